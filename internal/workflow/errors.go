package workflow

import "errors"

// Ошибки валидации определения.
var (
	// ErrEmptyNodes — определение не содержит узлов.
	ErrEmptyNodes = errors.New("workflow has no nodes")

	// ErrEmptyNodeID — узел без node_id.
	ErrEmptyNodeID = errors.New("node has empty ID")

	// ErrDuplicateNodeID — несколько узлов с одинаковым node_id.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNodeType — неизвестный node_type.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrMissingScript — узел script без script_id.
	ErrMissingScript = errors.New("script node has no script")

	// ErrEmptyEdgeID — ребро без edge_id.
	ErrEmptyEdgeID = errors.New("edge has empty ID")

	// ErrDuplicateEdgeID — несколько рёбер с одинаковым edge_id.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownNode — ребро ссылается на несуществующий узел.
	ErrUnknownNode = errors.New("edge references unknown node")

	// ErrSelfLoop — ребро из узла в него же.
	ErrSelfLoop = errors.New("edge connects node to itself")

	// ErrCyclicDependency — обнаружен цикл.
	ErrCyclicDependency = errors.New("cyclic dependency detected")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	NodeID  string // узел или ребро, где произошла ошибка
	Field   string
	Message string
	Err     error
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.NodeID != "" {
		return e.NodeID + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(id, field, message string, err error) *ValidationError {
	return &ValidationError{
		NodeID:  id,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
