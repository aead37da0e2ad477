package database

import (
	"context"

	"github.com/Rana718/retailgen/internal/types"
)

// Sink is a bulk-insert target for generated tables. Append must not return
// until the rows are visible to later reads in the same run.
type Sink interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// CreateSchema creates the tables, parents first, if they do not exist.
	CreateSchema(ctx context.Context, tables []types.TableDef) error
	// Truncate empties the tables in the order given (children first).
	Truncate(ctx context.Context, tables []string) error

	// Append inserts rows aligned to columns in one attempt and returns the
	// number of rows the store acknowledged.
	Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	QueryInt(ctx context.Context, query string, args ...any) (int64, error)
	Verify(ctx context.Context) (*types.Verification, error)
}
