package workflow

import (
	"encoding/json"
	"fmt"
)

// Типы узлов, которые исполняет backend.
const (
	NodeScript    = "script"
	NodeDelay     = "delay"
	NodeCondition = "condition"
)

var validNodeTypes = map[string]bool{
	NodeScript:    true,
	NodeDelay:     true,
	NodeCondition: true,
}

// Definition — определение workflow в формате API (create/update,
// результат использования шаблона).
type Definition struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
	Nodes       []NodeDef       `json:"nodes"`
	Edges       []EdgeDef       `json:"edges"`
}

// NodeDef — узел workflow.
type NodeDef struct {
	NodeID   string          `json:"node_id"`
	NodeType string          `json:"node_type"`
	ScriptID *int            `json:"script_id,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
	Position *Position       `json:"position,omitempty"`
}

// Position — координаты узла в редакторе.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeDef — ребро source → target. Condition передаётся backend как есть.
type EdgeDef struct {
	EdgeID    string          `json:"edge_id"`
	Source    string          `json:"source"`
	Target    string          `json:"target"`
	Condition json.RawMessage `json:"condition,omitempty"`
}

// Parse разбирает JSON-определение workflow.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse workflow definition: %w", err)
	}
	return &def, nil
}

// Validate проверяет определение целиком: узлы, рёбра и отсутствие циклов.
func Validate(def *Definition) error {
	_, err := BuildGraph(def)
	return err
}

func validateNodes(nodes []NodeDef) error {
	if len(nodes) == 0 {
		return ErrEmptyNodes
	}

	seen := make(map[string]bool, len(nodes))
	for i := range nodes {
		n := &nodes[i]

		if n.NodeID == "" {
			return newValidationError("", "node_id",
				fmt.Sprintf("node #%d has empty ID", i+1), ErrEmptyNodeID)
		}
		if seen[n.NodeID] {
			return newValidationError(n.NodeID, "node_id",
				"duplicate node ID", ErrDuplicateNodeID)
		}
		seen[n.NodeID] = true

		if !validNodeTypes[n.NodeType] {
			return newValidationError(n.NodeID, "node_type",
				fmt.Sprintf("unknown node type %q", n.NodeType), ErrUnknownNodeType)
		}
		if n.NodeType == NodeScript && (n.ScriptID == nil || *n.ScriptID <= 0) {
			return newValidationError(n.NodeID, "script_id",
				"script node has no script_id", ErrMissingScript)
		}
	}
	return nil
}

func validateEdges(edges []EdgeDef, nodes map[string]*Node) error {
	seen := make(map[string]bool, len(edges))
	for i := range edges {
		e := &edges[i]

		if e.EdgeID == "" {
			return newValidationError("", "edge_id",
				fmt.Sprintf("edge #%d has empty ID", i+1), ErrEmptyEdgeID)
		}
		if seen[e.EdgeID] {
			return newValidationError(e.EdgeID, "edge_id",
				"duplicate edge ID", ErrDuplicateEdgeID)
		}
		seen[e.EdgeID] = true

		if _, ok := nodes[e.Source]; !ok {
			return newValidationError(e.EdgeID, "source",
				fmt.Sprintf("unknown source node %q", e.Source), ErrUnknownNode)
		}
		if _, ok := nodes[e.Target]; !ok {
			return newValidationError(e.EdgeID, "target",
				fmt.Sprintf("unknown target node %q", e.Target), ErrUnknownNode)
		}
		if e.Source == e.Target {
			return newValidationError(e.EdgeID, "target",
				"edge connects node to itself", ErrSelfLoop)
		}
	}
	return nil
}
