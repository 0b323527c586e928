package client

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// BodyKind — способ кодирования тела запроса.
type BodyKind int

const (
	// BodyNone — запрос без тела (GET, DELETE, action-эндпоинты).
	BodyNone BodyKind = iota

	// BodyJSON — тело кодируется в JSON.
	BodyJSON

	// BodyMultipart — тело передаётся готовой multipart-формой.
	BodyMultipart
)

// Endpoint — описание одной операции backend API.
//
// Path содержит плейсхолдеры вида {id}, которые подставляются
// в порядке следования при построении запроса.
type Endpoint struct {
	Name    string
	Method  string
	Path    string
	Query   []string // распознаваемые ключи query, передаются как есть
	Body    BodyKind
	URLOnly bool // операция только строит URL, запрос не выполняется
}

// Имена операций.
const (
	OpGetScripts             = "GetScripts"
	OpGetScript              = "GetScript"
	OpCreateScript           = "CreateScript"
	OpUpdateScript           = "UpdateScript"
	OpDeleteScript           = "DeleteScript"
	OpGetScriptVersions      = "GetScriptVersions"
	OpGetScriptVersion       = "GetScriptVersion"
	OpRollbackScript         = "RollbackScript"
	OpExecuteScript          = "ExecuteScript"
	OpExecuteScriptWithFiles = "ExecuteScriptWithFiles"
	OpToggleScriptFavorite   = "ToggleScriptFavorite"

	OpGetExecutions         = "GetExecutions"
	OpGetExecution          = "GetExecution"
	OpDeleteExecution       = "DeleteExecution"
	OpGetExecutionLogs      = "GetExecutionLogs"
	OpExecutionLogStreamURL = "ExecutionLogStreamURL"
	OpCancelExecution       = "CancelExecution"
	OpGetExecutionFiles     = "GetExecutionFiles"
	OpExecutionFileURL      = "ExecutionFileURL"
	OpPreviewExecutionFile  = "PreviewExecutionFile"

	OpGetSchedules   = "GetSchedules"
	OpGetSchedule    = "GetSchedule"
	OpCreateSchedule = "CreateSchedule"
	OpUpdateSchedule = "UpdateSchedule"
	OpDeleteSchedule = "DeleteSchedule"
	OpToggleSchedule = "ToggleSchedule"
	OpRunScheduleNow = "RunScheduleNow"

	OpGetFiles        = "GetFiles"
	OpUploadFile      = "UploadFile"
	OpDownloadFileURL = "DownloadFileURL"
	OpPreviewFile     = "PreviewFile"
	OpDeleteFile      = "DeleteFile"
	OpCreateFolder    = "CreateFolder"
	OpUpdateFile      = "UpdateFile"

	OpGetEnvironments       = "GetEnvironments"
	OpGetEnvironment        = "GetEnvironment"
	OpCreateEnvironment     = "CreateEnvironment"
	OpUpdateEnvironment     = "UpdateEnvironment"
	OpDeleteEnvironment     = "DeleteEnvironment"
	OpSetDefaultEnvironment = "SetDefaultEnvironment"
	OpDetectEnvironment     = "DetectEnvironment"

	OpGetCategories  = "GetCategories"
	OpCreateCategory = "CreateCategory"
	OpUpdateCategory = "UpdateCategory"
	OpDeleteCategory = "DeleteCategory"

	OpGetTags   = "GetTags"
	OpCreateTag = "CreateTag"
	OpUpdateTag = "UpdateTag"
	OpDeleteTag = "DeleteTag"

	OpGetWorkflows    = "GetWorkflows"
	OpGetWorkflow     = "GetWorkflow"
	OpCreateWorkflow  = "CreateWorkflow"
	OpUpdateWorkflow  = "UpdateWorkflow"
	OpDeleteWorkflow  = "DeleteWorkflow"
	OpExecuteWorkflow = "ExecuteWorkflow"
	OpToggleWorkflow  = "ToggleWorkflow"

	OpGetWorkflowExecutions      = "GetWorkflowExecutions"
	OpGetWorkflowExecution       = "GetWorkflowExecution"
	OpCancelWorkflowExecution    = "CancelWorkflowExecution"
	OpWorkflowExecutionStreamURL = "WorkflowExecutionStreamURL"

	OpGetWorkflowTemplates   = "GetWorkflowTemplates"
	OpGetWorkflowTemplate    = "GetWorkflowTemplate"
	OpCreateWorkflowTemplate = "CreateWorkflowTemplate"
	OpUpdateWorkflowTemplate = "UpdateWorkflowTemplate"
	OpDeleteWorkflowTemplate = "DeleteWorkflowTemplate"
	OpUseWorkflowTemplate    = "UseWorkflowTemplate"
	OpGetTemplateCategories  = "GetTemplateCategories"

	OpGetGlobalVariables     = "GetGlobalVariables"
	OpGetGlobalVariable      = "GetGlobalVariable"
	OpCreateGlobalVariable   = "CreateGlobalVariable"
	OpUpdateGlobalVariable   = "UpdateGlobalVariable"
	OpDeleteGlobalVariable   = "DeleteGlobalVariable"
	OpGetGlobalVariablesDict = "GetGlobalVariablesDict"
)

var (
	listKeys      = []string{KeyPage, KeyPerPage, KeySearch, KeySort}
	executionKeys = []string{KeyPage, KeyPerPage, KeyScriptID, KeyStatus}
	wfExecKeys    = []string{KeyPage, KeyPerPage, KeyWorkflowID, KeyStatus}
	templateKeys  = []string{KeyCategory, KeySearch}
	pathKeys      = []string{KeyPath}
	variableKeys  = []string{KeyShowEncrypted}
)

// endpoints — таблица всех операций. Ключ map гарантирует уникальность имён.
var endpoints = map[string]Endpoint{
	// Scripts
	OpGetScripts:             {Method: http.MethodGet, Path: "/scripts", Query: listKeys},
	OpGetScript:              {Method: http.MethodGet, Path: "/scripts/{id}"},
	OpCreateScript:           {Method: http.MethodPost, Path: "/scripts", Body: BodyJSON},
	OpUpdateScript:           {Method: http.MethodPut, Path: "/scripts/{id}", Body: BodyJSON},
	OpDeleteScript:           {Method: http.MethodDelete, Path: "/scripts/{id}"},
	OpGetScriptVersions:      {Method: http.MethodGet, Path: "/scripts/{id}/versions"},
	OpGetScriptVersion:       {Method: http.MethodGet, Path: "/scripts/{id}/versions/{version}"},
	OpRollbackScript:         {Method: http.MethodPost, Path: "/scripts/{id}/rollback/{version}"},
	OpExecuteScript:          {Method: http.MethodPost, Path: "/scripts/{id}/execute", Body: BodyJSON},
	OpExecuteScriptWithFiles: {Method: http.MethodPost, Path: "/scripts/{id}/execute", Body: BodyMultipart},
	OpToggleScriptFavorite:   {Method: http.MethodPost, Path: "/scripts/{id}/favorite"},

	// Executions
	OpGetExecutions:         {Method: http.MethodGet, Path: "/executions", Query: executionKeys},
	OpGetExecution:          {Method: http.MethodGet, Path: "/executions/{id}"},
	OpDeleteExecution:       {Method: http.MethodDelete, Path: "/executions/{id}"},
	OpGetExecutionLogs:      {Method: http.MethodGet, Path: "/executions/{id}/logs"},
	OpExecutionLogStreamURL: {Method: http.MethodGet, Path: "/executions/{id}/logs/stream", URLOnly: true},
	OpCancelExecution:       {Method: http.MethodPost, Path: "/executions/{id}/cancel"},
	OpGetExecutionFiles:     {Method: http.MethodGet, Path: "/executions/{id}/files"},
	OpExecutionFileURL:      {Method: http.MethodGet, Path: "/executions/{id}/files/{path}", Query: []string{KeyDownload}, URLOnly: true},
	OpPreviewExecutionFile:  {Method: http.MethodGet, Path: "/executions/{id}/files/{path}"},

	// Schedules
	OpGetSchedules:   {Method: http.MethodGet, Path: "/schedules"},
	OpGetSchedule:    {Method: http.MethodGet, Path: "/schedules/{id}"},
	OpCreateSchedule: {Method: http.MethodPost, Path: "/schedules", Body: BodyJSON},
	OpUpdateSchedule: {Method: http.MethodPut, Path: "/schedules/{id}", Body: BodyJSON},
	OpDeleteSchedule: {Method: http.MethodDelete, Path: "/schedules/{id}"},
	OpToggleSchedule: {Method: http.MethodPost, Path: "/schedules/{id}/toggle"},
	OpRunScheduleNow: {Method: http.MethodPost, Path: "/schedules/{id}/run"},

	// Files
	OpGetFiles:        {Method: http.MethodGet, Path: "/files", Query: pathKeys},
	OpUploadFile:      {Method: http.MethodPost, Path: "/files/upload", Body: BodyMultipart},
	OpDownloadFileURL: {Method: http.MethodGet, Path: "/files/download", Query: pathKeys, URLOnly: true},
	OpPreviewFile:     {Method: http.MethodGet, Path: "/files/preview", Query: pathKeys},
	OpDeleteFile:      {Method: http.MethodDelete, Path: "/files/delete", Query: pathKeys},
	OpCreateFolder:    {Method: http.MethodPost, Path: "/files/create-folder", Body: BodyJSON},
	OpUpdateFile:      {Method: http.MethodPut, Path: "/files/update", Body: BodyJSON},

	// Environments
	OpGetEnvironments:       {Method: http.MethodGet, Path: "/environments"},
	OpGetEnvironment:        {Method: http.MethodGet, Path: "/environments/{id}"},
	OpCreateEnvironment:     {Method: http.MethodPost, Path: "/environments", Body: BodyJSON},
	OpUpdateEnvironment:     {Method: http.MethodPut, Path: "/environments/{id}", Body: BodyJSON},
	OpDeleteEnvironment:     {Method: http.MethodDelete, Path: "/environments/{id}"},
	OpSetDefaultEnvironment: {Method: http.MethodPost, Path: "/environments/{id}/set-default"},
	OpDetectEnvironment:     {Method: http.MethodPost, Path: "/environments/detect", Body: BodyJSON},

	// Categories / Tags
	OpGetCategories:  {Method: http.MethodGet, Path: "/categories"},
	OpCreateCategory: {Method: http.MethodPost, Path: "/categories", Body: BodyJSON},
	OpUpdateCategory: {Method: http.MethodPut, Path: "/categories/{id}", Body: BodyJSON},
	OpDeleteCategory: {Method: http.MethodDelete, Path: "/categories/{id}"},
	OpGetTags:        {Method: http.MethodGet, Path: "/tags"},
	OpCreateTag:      {Method: http.MethodPost, Path: "/tags", Body: BodyJSON},
	OpUpdateTag:      {Method: http.MethodPut, Path: "/tags/{id}", Body: BodyJSON},
	OpDeleteTag:      {Method: http.MethodDelete, Path: "/tags/{id}"},

	// Workflows
	OpGetWorkflows:    {Method: http.MethodGet, Path: "/workflows"},
	OpGetWorkflow:     {Method: http.MethodGet, Path: "/workflows/{id}"},
	OpCreateWorkflow:  {Method: http.MethodPost, Path: "/workflows", Body: BodyJSON},
	OpUpdateWorkflow:  {Method: http.MethodPut, Path: "/workflows/{id}", Body: BodyJSON},
	OpDeleteWorkflow:  {Method: http.MethodDelete, Path: "/workflows/{id}"},
	OpExecuteWorkflow: {Method: http.MethodPost, Path: "/workflows/{id}/execute", Body: BodyJSON},
	OpToggleWorkflow:  {Method: http.MethodPost, Path: "/workflows/{id}/toggle"},

	// Workflow executions
	OpGetWorkflowExecutions:      {Method: http.MethodGet, Path: "/workflow-executions", Query: wfExecKeys},
	OpGetWorkflowExecution:       {Method: http.MethodGet, Path: "/workflow-executions/{id}"},
	OpCancelWorkflowExecution:    {Method: http.MethodPost, Path: "/workflow-executions/{id}/cancel"},
	OpWorkflowExecutionStreamURL: {Method: http.MethodGet, Path: "/workflow-executions/{id}/stream", URLOnly: true},

	// Workflow templates
	OpGetWorkflowTemplates:   {Method: http.MethodGet, Path: "/workflow-templates", Query: templateKeys},
	OpGetWorkflowTemplate:    {Method: http.MethodGet, Path: "/workflow-templates/{id}"},
	OpCreateWorkflowTemplate: {Method: http.MethodPost, Path: "/workflow-templates", Body: BodyJSON},
	OpUpdateWorkflowTemplate: {Method: http.MethodPut, Path: "/workflow-templates/{id}", Body: BodyJSON},
	OpDeleteWorkflowTemplate: {Method: http.MethodDelete, Path: "/workflow-templates/{id}"},
	OpUseWorkflowTemplate:    {Method: http.MethodPost, Path: "/workflow-templates/{id}/use", Body: BodyJSON},
	OpGetTemplateCategories:  {Method: http.MethodGet, Path: "/workflow-templates/categories"},

	// Global variables
	OpGetGlobalVariables:     {Method: http.MethodGet, Path: "/global-variables", Query: variableKeys},
	OpGetGlobalVariable:      {Method: http.MethodGet, Path: "/global-variables/{id}", Query: variableKeys},
	OpCreateGlobalVariable:   {Method: http.MethodPost, Path: "/global-variables", Body: BodyJSON},
	OpUpdateGlobalVariable:   {Method: http.MethodPut, Path: "/global-variables/{id}", Body: BodyJSON},
	OpDeleteGlobalVariable:   {Method: http.MethodDelete, Path: "/global-variables/{id}"},
	OpGetGlobalVariablesDict: {Method: http.MethodGet, Path: "/global-variables/dict"},
}

// Lookup возвращает описание операции по имени.
func Lookup(name string) (Endpoint, error) {
	ep, ok := endpoints[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	ep.Name = name
	return ep, nil
}

// Endpoints возвращает все операции, отсортированные по имени.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(endpoints))
	for name := range endpoints {
		ep, _ := Lookup(name)
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Params возвращает имена плейсхолдеров пути в порядке следования.
func (e Endpoint) Params() []string {
	var params []string
	rest := e.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return params
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return params
		}
		params = append(params, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
}

// Expand подставляет значения в плейсхолдеры пути.
// Каждое значение экранируется как компонент query (url.QueryEscape,
// пробел → %20): "/" внутри значения превращается в %2F, а также
// кодируются + = @ $ & , : ;.
func (e Endpoint) Expand(args ...string) (string, error) {
	params := e.Params()
	if len(args) != len(params) {
		return "", fmt.Errorf("%w: %s expects %d path params, got %d",
			ErrMissingParam, e.Name, len(params), len(args))
	}

	path := e.Path
	for i, p := range params {
		path = strings.Replace(path, "{"+p+"}", escapeComponent(args[i]), 1)
	}
	return path, nil
}
