package common

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/retailgen/internal/types"
)

// validIdentifier guards table and column names that are spliced into SQL.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func ValidateIdentifiers(table string, columns []string) error {
	if !validIdentifier.MatchString(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}
	for _, c := range columns {
		if !validIdentifier.MatchString(c) {
			return fmt.Errorf("invalid column name in table %s: %s", table, c)
		}
	}
	return nil
}

// Dialect carries the provider specific parts of DDL rendering.
type Dialect struct {
	Quote      func(string) string
	ColumnType func(types.Column) string
	Suffix     string // appended after the closing parenthesis
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS with primary and foreign
// keys declared inline.
func CreateTableSQL(t types.TableDef, d Dialect) string {
	var lines []string
	var pk []string
	var fks []string

	for _, c := range t.Columns {
		line := fmt.Sprintf("  %s %s", d.Quote(c.Name), d.ColumnType(c))
		if !c.Nullable {
			line += " NOT NULL"
		}
		lines = append(lines, line)
		if c.IsPrimary {
			pk = append(pk, d.Quote(c.Name))
		}
		if c.References != nil {
			fks = append(fks, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s (%s)",
				d.Quote(c.Name), d.Quote(c.References.Table), d.Quote(c.References.Column)))
		}
	}
	if len(pk) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	}
	lines = append(lines, fks...)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)%s",
		d.Quote(t.Name), strings.Join(lines, ",\n"), d.Suffix)
}

// IntQuerier runs a query that yields a single integer.
type IntQuerier interface {
	QueryInt(ctx context.Context, query string, args ...any) (int64, error)
}

// Verify runs the integrity checks against any SQL sink. Totals are compared
// with a small tolerance since some stores keep decimals as floating point.
func Verify(ctx context.Context, q IntQuerier, qb squirrel.StatementBuilderType) (*types.Verification, error) {
	v := &types.Verification{Counts: make(map[string]int64)}

	scalar := func(b squirrel.Sqlizer, what string) (int64, error) {
		query, args, err := b.ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build %s query: %w", what, err)
		}
		n, err := q.QueryInt(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to query %s: %w", what, err)
		}
		return n, nil
	}

	for _, table := range []string{types.TableCustomers, types.TableOrders, types.TableTransactions} {
		n, err := scalar(qb.Select("COUNT(*)").From(table), table+" count")
		if err != nil {
			return nil, err
		}
		v.Counts[table] = n
	}

	var err error
	v.OrphanOrders, err = scalar(qb.Select("COUNT(*)").
		From("orders o").
		LeftJoin("customers c ON o.customer_id = c.customer_id").
		Where("c.customer_id IS NULL"), "orphan orders")
	if err != nil {
		return nil, err
	}

	v.OrphanTransactions, err = scalar(qb.Select("COUNT(*)").
		From("transactions t").
		LeftJoin("orders o ON t.order_id = o.order_id").
		Where("o.order_id IS NULL"), "orphan transactions")
	if err != nil {
		return nil, err
	}

	perOrder := qb.Select("o.order_id", "COUNT(t.transaction_id) AS items").
		From("orders o").
		LeftJoin("transactions t ON t.order_id = o.order_id").
		GroupBy("o.order_id")
	v.OrdersOutsideItemRange, err = scalar(qb.Select("COUNT(*)").
		FromSelect(perOrder, "per_order").
		Where("items < 1 OR items > 10"), "items per order")
	if err != nil {
		return nil, err
	}

	v.TotalMismatches, err = scalar(qb.Select("COUNT(*)").
		From("transactions").
		Where("ABS(total_amount - quantity * unit_price) > 0.001"), "line totals")
	if err != nil {
		return nil, err
	}

	return v, nil
}
