package seeder

import (
	"slices"
	"strings"
	"testing"

	"github.com/Rana718/retailgen/internal/database"
	"github.com/Rana718/retailgen/internal/types"
)

func TestInsertionOrderFollowsForeignKeys(t *testing.T) {
	g := NewDependencyGraph()
	for _, table := range database.Schema(true) {
		g.AddTable(table)
	}

	order, err := g.BuildInsertionOrder()
	if err != nil {
		t.Fatalf("BuildInsertionOrder failed: %v", err)
	}
	want := []string{types.TableCustomers, types.TableDuplicates, types.TableOrders, types.TableTransactions}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	truncate := g.TruncationOrder()
	slices.Reverse(want)
	if !slices.Equal(truncate, want) {
		t.Errorf("truncation order = %v, want %v", truncate, want)
	}

	defs := g.Definitions()
	if len(defs) != 4 || defs[0].Name != types.TableCustomers {
		t.Errorf("definitions not in insertion order: %v", defs)
	}
}

func TestInsertionOrderErrors(t *testing.T) {
	fk := func(table string) []types.Column {
		return []types.Column{{Name: "ref", References: &types.Reference{Table: table, Column: "id"}}}
	}

	tests := []struct {
		name   string
		tables []types.TableDef
		want   string
	}{
		{
			name:   "cycle",
			tables: []types.TableDef{{Name: "a", Columns: fk("b")}, {Name: "b", Columns: fk("a")}},
			want:   "circular dependency",
		},
		{
			name:   "undefined reference",
			tables: []types.TableDef{{Name: "a", Columns: fk("missing")}},
			want:   "referenced but not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDependencyGraph()
			for _, table := range tt.tables {
				g.AddTable(table)
			}
			_, err := g.BuildInsertionOrder()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSelfReferenceIsAllowed(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(types.TableDef{Name: "node", Columns: []types.Column{
		{Name: "id", IsPrimary: true},
		{Name: "parent", Nullable: true, References: &types.Reference{Table: "node", Column: "id"}},
	}})
	order, err := g.BuildInsertionOrder()
	if err != nil || !slices.Equal(order, []string{"node"}) {
		t.Errorf("got %v, %v", order, err)
	}
}
