package workflow

import (
	"slices"
	"strings"
)

// Node — узел графа.
type Node struct {
	ID  string
	Def *NodeDef

	// InDegree — количество входящих рёбер.
	InDegree int

	DependsOn  []*Node
	Dependents []*Node
}

// Graph — проверенный ациклический граф workflow.
type Graph struct {
	Nodes map[string]*Node

	// Entry — узлы без входящих рёбер, в порядке определения.
	Entry []*Node

	// Order — порядок исполнения (Кан, стабильный относительно определения).
	Order []*Node
}

// BuildGraph проверяет определение и строит граф.
// Ошибка — *ValidationError с одним из sentinel-значений пакета,
// либо ErrEmptyNodes / ErrCyclicDependency.
func BuildGraph(def *Definition) (*Graph, error) {
	if def == nil {
		return nil, ErrEmptyNodes
	}
	if err := validateNodes(def.Nodes); err != nil {
		return nil, err
	}

	g := &Graph{Nodes: make(map[string]*Node, len(def.Nodes))}
	ordered := make([]*Node, len(def.Nodes))
	for i := range def.Nodes {
		n := &Node{ID: def.Nodes[i].NodeID, Def: &def.Nodes[i]}
		g.Nodes[n.ID] = n
		ordered[i] = n
	}

	if err := validateEdges(def.Edges, g.Nodes); err != nil {
		return nil, err
	}
	for _, e := range def.Edges {
		g.addEdge(g.Nodes[e.Source], g.Nodes[e.Target])
	}

	for _, n := range ordered {
		if n.InDegree == 0 {
			g.Entry = append(g.Entry, n)
		}
	}

	order, err := g.topologicalSort()
	if err != nil {
		return nil, err
	}
	g.Order = order

	return g, nil
}

// addEdge связывает from → to. Повторное ребро не учитывается в InDegree.
func (g *Graph) addEdge(from, to *Node) {
	for _, dep := range to.DependsOn {
		if dep.ID == from.ID {
			return
		}
	}
	from.Dependents = append(from.Dependents, to)
	to.DependsOn = append(to.DependsOn, from)
	to.InDegree++
}

func (g *Graph) topologicalSort() ([]*Node, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	for id, n := range g.Nodes {
		inDegree[id] = n.InDegree
	}

	queue := make([]*Node, len(g.Entry))
	copy(queue, g.Entry)

	order := make([]*Node, 0, len(g.Nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, dep := range n.Dependents {
			inDegree[dep.ID]--
			if inDegree[dep.ID] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		var stuck []string
		for id, d := range inDegree {
			if d > 0 {
				stuck = append(stuck, id)
			}
		}
		slices.Sort(stuck)
		return nil, newValidationError("", "edges",
			"cyclic dependency between nodes "+strings.Join(stuck, ", "), ErrCyclicDependency)
	}

	return order, nil
}

// Node возвращает узел по ID.
func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// Size возвращает количество узлов.
func (g *Graph) Size() int {
	return len(g.Nodes)
}
