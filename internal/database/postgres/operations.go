package postgres

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// decimal is implemented by fixed-point amounts that must not pass through
// float on their way into a NUMERIC column.
type decimal interface {
	DecimalParts() (unscaled int64, scale int32)
}

func (p *Adapter) Truncate(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = pgx.Identifier{t}.Sanitize()
	}
	if _, err := p.pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(quoted, ", ")+" CASCADE"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// Append streams rows with COPY inside a transaction, so a chunk is either
// fully visible or not at all.
func (p *Adapter) Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		return encodeRow(rows[i]), nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s failed: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit copy into %s: %w", table, err)
	}
	return n, nil
}

func encodeRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if d, ok := v.(decimal); ok {
			unscaled, scale := d.DecimalParts()
			out[i] = pgtype.Numeric{Int: big.NewInt(unscaled), Exp: -scale, Valid: true}
			continue
		}
		out[i] = v
	}
	return out
}
