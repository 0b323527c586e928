package client

import "encoding/json"

// --- Request types ---

// ExecuteRequest — тело запуска скрипта или workflow.
type ExecuteRequest struct {
	Params map[string]any `json:"params,omitempty"`
}

// ScriptRequest — создание/обновление скрипта.
type ScriptRequest struct {
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type,omitempty"`
	Code          string          `json:"code,omitempty"`
	Dependencies  string          `json:"dependencies,omitempty"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
	EnvironmentID *int            `json:"environment_id,omitempty"`
	CategoryID    *int            `json:"category_id,omitempty"`
	TagIDs        []int           `json:"tag_ids,omitempty"`
}

// ScheduleRequest — создание/обновление расписания.
type ScheduleRequest struct {
	ScriptID    int            `json:"script_id,omitempty"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Cron        string         `json:"cron,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Enabled     *bool          `json:"enabled,omitempty"`
}

// FolderRequest — создание каталога.
type FolderRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// FileUpdateRequest — сохранение содержимого файла.
type FileUpdateRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// EnvironmentRequest — создание/обновление окружения и detect.
type EnvironmentRequest struct {
	Name           string `json:"name,omitempty"`
	Type           string `json:"type,omitempty"`
	ExecutablePath string `json:"executable_path,omitempty"`
	Description    string `json:"description,omitempty"`
	IsDefault      *bool  `json:"is_default,omitempty"`
}

// NamedRequest — создание/обновление категории или тега.
type NamedRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// VariableRequest — создание/обновление глобальной переменной.
type VariableRequest struct {
	Key         string `json:"key,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	IsEncrypted *bool  `json:"is_encrypted,omitempty"`
}

// --- Response types ---

// Page — страница списка: {"items": [...], "total": N, "pages": M}.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page,omitempty"`
}

// Script — скрипт.
type Script struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type"`
	Code          string          `json:"code,omitempty"`
	Dependencies  string          `json:"dependencies,omitempty"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
	EnvironmentID *int            `json:"environment_id,omitempty"`
	CategoryID    *int            `json:"category_id,omitempty"`
	IsFavorite    bool            `json:"is_favorite"`
	Category      *Category       `json:"category,omitempty"`
	Tags          []Tag           `json:"tags,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// ScriptVersion — сохранённая версия скрипта.
type ScriptVersion struct {
	ID           int    `json:"id"`
	ScriptID     int    `json:"script_id"`
	Version      int    `json:"version"`
	Code         string `json:"code,omitempty"`
	Dependencies string `json:"dependencies,omitempty"`
	Description  string `json:"description,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Execution — выполнение скрипта.
type Execution struct {
	ID              int            `json:"id"`
	ScriptID        int            `json:"script_id"`
	ScriptName      string         `json:"script_name,omitempty"`
	EnvironmentID   *int           `json:"environment_id,omitempty"`
	EnvironmentName string         `json:"environment_name,omitempty"`
	Status          string         `json:"status"`
	Progress        int            `json:"progress,omitempty"`
	Stage           string         `json:"stage,omitempty"`
	PID             int            `json:"pid,omitempty"`
	Params          map[string]any `json:"params,omitempty"`
	Output          string         `json:"output,omitempty"`
	Error           string         `json:"error,omitempty"`
	LogFile         string         `json:"log_file,omitempty"`
	StartTime       string         `json:"start_time,omitempty"`
	EndTime         string         `json:"end_time,omitempty"`
	CreatedAt       string         `json:"created_at"`
}

// ExecutionLogs — логи выполнения.
type ExecutionLogs struct {
	Logs  string `json:"logs"`
	Error string `json:"error,omitempty"`
}

// ExecutionFile — файл в рабочем каталоге выполнения.
type ExecutionFile struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time,omitempty"`
	IsText       bool   `json:"is_text"`
}

// ExecutionFiles — содержимое рабочего каталога выполнения.
type ExecutionFiles struct {
	Files     []ExecutionFile `json:"files"`
	TotalSize int64           `json:"total_size"`
	SpacePath string          `json:"space_path,omitempty"`
}

// FilePreview — предпросмотр файла: текст, бинарный файл или листы Excel.
type FilePreview struct {
	Type    string       `json:"type"`
	Content string       `json:"content,omitempty"`
	Size    int64        `json:"size,omitempty"`
	Sheets  []SheetTable `json:"sheets,omitempty"`
}

// SheetTable — лист Excel в предпросмотре.
type SheetTable struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Schedule — расписание запуска скрипта.
type Schedule struct {
	ID          int            `json:"id"`
	ScriptID    int            `json:"script_id"`
	ScriptName  string         `json:"script_name,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Cron        string         `json:"cron"`
	Params      map[string]any `json:"params,omitempty"`
	Enabled     bool           `json:"enabled"`
	LastRun     string         `json:"last_run,omitempty"`
	NextRun     string         `json:"next_run,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// FileEntry — элемент файлового каталога.
type FileEntry struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	IsDir      bool    `json:"is_dir"`
	Size       int64   `json:"size"`
	ModifiedAt float64 `json:"modified_at,omitempty"` // unix-время в секундах
}

// Environment — окружение выполнения (интерпретатор).
type Environment struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	ExecutablePath string `json:"executable_path"`
	Description    string `json:"description,omitempty"`
	IsDefault      bool   `json:"is_default"`
	Version        string `json:"version,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Category — категория скриптов.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Tag — тег скриптов.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Workflow — workflow.
type Workflow struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
	Enabled     bool            `json:"enabled"`
	NodesCount  int             `json:"nodes_count"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// WorkflowExecution — выполнение workflow.
type WorkflowExecution struct {
	ID         int            `json:"id"`
	WorkflowID int            `json:"workflow_id"`
	Workflow   *Workflow      `json:"workflow,omitempty"`
	Status     string         `json:"status"`
	Params     map[string]any `json:"params,omitempty"`
	StartTime  string         `json:"start_time,omitempty"`
	EndTime    string         `json:"end_time,omitempty"`
	Error      string         `json:"error,omitempty"`
	Duration   *float64       `json:"duration,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

// WorkflowTemplate — шаблон workflow.
type WorkflowTemplate struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	Icon           string          `json:"icon,omitempty"`
	TemplateConfig json.RawMessage `json:"template_config,omitempty"`
	IsBuiltin      bool            `json:"is_builtin"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// GlobalVariable — глобальная переменная.
type GlobalVariable struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	IsEncrypted bool   `json:"is_encrypted"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
