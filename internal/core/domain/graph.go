// Package domain contains the core domain models for production scheduling:
// catalogs, plans, task instances, the schedule/inventory/log accumulators and the
// prerequisite graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// TaskNode is a catalog task as seen by the prerequisite graph.
type TaskNode struct {
	ID            InternedString
	Product       InternedString
	Description   string
	Prerequisites []InternedString
}

// Graph is the prerequisite graph of a task catalog.
type Graph struct {
	tasks          map[InternedString]TaskNode
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[InternedString]TaskNode),
	}
}

// BuildGraph adds every catalog row to a new graph. Rows repeating a task id are
// skipped and reported; the first row wins.
func BuildGraph(rows []TaskRow) (*Graph, []error) {
	g := NewGraph()
	var errs []error
	for _, row := range rows {
		node := &TaskNode{
			ID:            NewInternedString(row.ResultID),
			Product:       NewInternedString(row.Product),
			Description:   row.Description,
			Prerequisites: NewInternedStrings(row.Requirements),
		}
		if err := g.AddTask(node); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errs
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same id already exists.
func (g *Graph) AddTask(t *TaskNode) error {
	if _, exists := g.tasks[t.ID]; exists {
		err := zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "duplicate catalog row"), "task_id", t.ID.String())
		return zerr.With(err, "product", t.Product.String())
	}
	g.tasks[t.ID] = *t
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// Validate checks for missing prerequisites and cycles using a topological sort.
// Tasks are visited in id order so the resulting execution order is stable.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task := g.tasks[u]
		for _, dep := range task.Prerequisites {
			if _, exists := g.tasks[dep]; !exists {
				err := zerr.With(zerr.Wrap(ErrMissingDependency, "unresolved prerequisite"), "dependency", dep.String())
				return zerr.With(err, "task_id", u.String())
			}
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.sortedIDs() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *Graph) sortedIDs() []InternedString {
	ids := make([]InternedString, 0, len(g.tasks))
	for id := range g.tasks {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	var b strings.Builder
	for _, node := range path[startIdx:] {
		b.WriteString(node.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "invalid prerequisite graph"), "cycle", b.String())
}

// Walk returns an iterator that yields tasks with prerequisites first.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[TaskNode] {
	return func(yield func(TaskNode) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}
