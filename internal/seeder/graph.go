package seeder

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Rana718/retailgen/internal/types"
)

// DependencyGraph orders tables so that every table comes after the tables
// its foreign keys reference.
type DependencyGraph struct {
	tables map[string]types.TableDef
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.TableDef),
	}
}

func (g *DependencyGraph) AddTable(table types.TableDef) {
	g.tables[table.Name] = table
}

// BuildInsertionOrder runs a depth-first topological sort. Tables are visited
// in name order so the result is stable between runs.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		table, ok := g.tables[tableName]
		if !ok {
			return fmt.Errorf("table %s is referenced but not defined", tableName)
		}
		for _, dep := range table.Dependencies() {
			if dep == tableName {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

// TruncationOrder is the insertion order reversed, children first.
func (g *DependencyGraph) TruncationOrder() []string {
	out := slices.Clone(g.order)
	slices.Reverse(out)
	return out
}

// Definitions returns the table definitions in insertion order.
func (g *DependencyGraph) Definitions() []types.TableDef {
	defs := make([]types.TableDef, len(g.order))
	for i, name := range g.order {
		defs[i] = g.tables[name]
	}
	return defs
}
