// Package memory is an in-process sink. It enforces primary key uniqueness
// and declared foreign keys, which makes it the reference store for tests and
// dry runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/Rana718/retailgen/internal/types"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrDuplicateKey = errors.New("duplicate primary key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrNoSQL        = errors.New("memory sink does not execute SQL")
)

type table struct {
	def  types.TableDef
	rows [][]any
	keys map[any]struct{}
}

type Adapter struct {
	mu      sync.RWMutex
	tables  map[string]*table
	appends map[string]int
	failOn  map[string]int
}

func New() *Adapter {
	return &Adapter{
		tables:  make(map[string]*table),
		appends: make(map[string]int),
		failOn:  make(map[string]int),
	}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	return nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return nil
}

// FailAppend makes the n-th Append (1-based) into table fail.
func (a *Adapter) FailAppend(table string, n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failOn[table] = n
}

func (a *Adapter) CreateSchema(ctx context.Context, defs []types.TableDef) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range defs {
		if _, ok := a.tables[d.Name]; ok {
			continue
		}
		for _, c := range d.Columns {
			if c.References == nil {
				continue
			}
			if _, ok := a.tables[c.References.Table]; !ok && c.References.Table != d.Name {
				return fmt.Errorf("table %s references %s: %w", d.Name, c.References.Table, ErrUnknownTable)
			}
		}
		a.tables[d.Name] = &table{def: d, keys: make(map[any]struct{})}
	}
	return nil
}

func (a *Adapter) Truncate(ctx context.Context, names []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, n := range names {
		t, ok := a.tables[n]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTable, n)
		}
		t.rows = nil
		t.keys = make(map[any]struct{})
	}
	return nil
}

// Append validates the whole chunk before storing any of it.
func (a *Adapter) Append(ctx context.Context, name string, columns []string, rows [][]any) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.appends[name]++
	if n, ok := a.failOn[name]; ok && n == a.appends[name] {
		return 0, fmt.Errorf("injected failure on append %d into %s", n, name)
	}

	t, ok := a.tables[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	if len(columns) != len(t.def.Columns) {
		return 0, fmt.Errorf("table %s has %d columns, got %d", name, len(t.def.Columns), len(columns))
	}
	for i, c := range t.def.Columns {
		if columns[i] != c.Name {
			return 0, fmt.Errorf("table %s column %d is %s, got %s", name, i, c.Name, columns[i])
		}
	}

	pk := t.def.PrimaryKey()
	pending := make(map[any]struct{}, len(rows))
	for ri, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("row %d of %s has %d values, want %d", ri, name, len(row), len(columns))
		}
		for ci, c := range t.def.Columns {
			v := row[ci]
			if v == nil {
				if !c.Nullable {
					return 0, fmt.Errorf("row %d of %s: column %s is NOT NULL", ri, name, c.Name)
				}
				continue
			}
			if c.References != nil && !a.hasKey(c.References.Table, v, name, pending) {
				return 0, fmt.Errorf("%w: %s.%s=%v not in %s", ErrForeignKey, name, c.Name, v, c.References.Table)
			}
		}
		if pk >= 0 {
			key := row[pk]
			_, dup := t.keys[key]
			if _, inChunk := pending[key]; dup || inChunk {
				return 0, fmt.Errorf("%w: %s=%v", ErrDuplicateKey, name, key)
			}
			pending[key] = struct{}{}
		}
	}

	for k := range pending {
		t.keys[k] = struct{}{}
	}
	for _, row := range rows {
		t.rows = append(t.rows, append([]any(nil), row...))
	}
	return int64(len(rows)), nil
}

func (a *Adapter) hasKey(parent string, v any, self string, pending map[any]struct{}) bool {
	if parent == self {
		if _, ok := pending[v]; ok {
			return true
		}
	}
	t, ok := a.tables[parent]
	if !ok {
		return false
	}
	_, ok = t.keys[v]
	return ok
}

func (a *Adapter) QueryInt(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, ErrNoSQL
}

// Rows returns a copy of the stored rows of a table.
func (a *Adapter) Rows(name string) [][]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.tables[name]
	if !ok {
		return nil
	}
	out := make([][]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]any(nil), r...)
	}
	return out
}

func (a *Adapter) Verify(ctx context.Context) (*types.Verification, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v := &types.Verification{Counts: make(map[string]int64)}
	for _, name := range []string{types.TableCustomers, types.TableOrders, types.TableTransactions} {
		if t, ok := a.tables[name]; ok {
			v.Counts[name] = int64(len(t.rows))
		}
	}

	customers, orders := a.tables[types.TableCustomers], a.tables[types.TableOrders]
	txs := a.tables[types.TableTransactions]
	if orders == nil || txs == nil || customers == nil {
		return v, nil
	}

	col := func(t *table, name string) int {
		for i, c := range t.def.Columns {
			if c.Name == name {
				return i
			}
		}
		return -1
	}

	orderCustomer := col(orders, "customer_id")
	items := make(map[any]int, len(orders.rows))
	for _, row := range orders.rows {
		if _, ok := customers.keys[row[orderCustomer]]; !ok {
			v.OrphanOrders++
		}
		items[row[orders.def.PrimaryKey()]] = 0
	}

	txOrder, qty := col(txs, "order_id"), col(txs, "quantity")
	unit, total := col(txs, "unit_price"), col(txs, "total_amount")
	for _, row := range txs.rows {
		if _, ok := orders.keys[row[txOrder]]; !ok {
			v.OrphanTransactions++
		} else {
			items[row[txOrder]]++
		}
		q, u, tot := number(row[qty]), number(row[unit]), number(row[total])
		if math.Abs(tot-q*u) > 0.001 {
			v.TotalMismatches++
		}
	}
	for _, n := range items {
		if n < 1 || n > 10 {
			v.OrdersOutsideItemRange++
		}
	}
	return v, nil
}

// number reads integers, floats, Stringers holding decimals and strings.
func number(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case fmt.Stringer:
		f, _ := strconv.ParseFloat(x.String(), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return math.NaN()
}
