package types

import (
	"fmt"
	"sort"
)

// Target tables.
const (
	TableCustomers    = "customers"
	TableOrders       = "orders"
	TableTransactions = "transactions"
	TableDuplicates   = "customer_duplicates"
)

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindBigInt
	KindDate
	KindDecimal
)

type Reference struct {
	Table  string
	Column string
}

type Column struct {
	Name       string
	Kind       ColumnKind
	Size       int // VARCHAR length or DECIMAL precision
	Scale      int // DECIMAL scale
	Nullable   bool
	IsPrimary  bool
	References *Reference
}

type TableDef struct {
	Name    string
	Columns []Column
}

func (t TableDef) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// PrimaryKey returns the index of the primary key column, or -1.
func (t TableDef) PrimaryKey() int {
	for i, c := range t.Columns {
		if c.IsPrimary {
			return i
		}
	}
	return -1
}

// Dependencies lists the distinct parent tables, sorted.
func (t TableDef) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, c := range t.Columns {
		if c.References != nil && !seen[c.References.Table] {
			seen[c.References.Table] = true
			deps = append(deps, c.References.Table)
		}
	}
	sort.Strings(deps)
	return deps
}

// Verification is the integrity report of loaded tables.
type Verification struct {
	Counts                 map[string]int64
	OrphanOrders           int64
	OrphanTransactions     int64
	OrdersOutsideItemRange int64
	TotalMismatches        int64
}

func (v *Verification) AvgItemsPerOrder() float64 {
	orders := v.Counts[TableOrders]
	if orders == 0 {
		return 0
	}
	return float64(v.Counts[TableTransactions]) / float64(orders)
}

// Problems describes every failed check; empty means the data is consistent.
func (v *Verification) Problems() []string {
	var out []string
	if v.OrphanOrders > 0 {
		out = append(out, fmt.Sprintf("%d orders reference missing customers", v.OrphanOrders))
	}
	if v.OrphanTransactions > 0 {
		out = append(out, fmt.Sprintf("%d transactions reference missing orders", v.OrphanTransactions))
	}
	if v.OrdersOutsideItemRange > 0 {
		out = append(out, fmt.Sprintf("%d orders have fewer than 1 or more than 10 items", v.OrdersOutsideItemRange))
	}
	if v.TotalMismatches > 0 {
		out = append(out, fmt.Sprintf("%d transactions have total_amount != quantity * unit_price", v.TotalMismatches))
	}
	return out
}
