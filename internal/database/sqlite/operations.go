package sqlite

import (
	"context"
	"fmt"
	"time"
)

func (s *Adapter) Truncate(ctx context.Context, tables []string) error {
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM "%s"`, t)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", t, err)
		}
	}
	return nil
}

// Append inserts rows through one prepared statement inside a transaction.
func (s *Adapter) Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query, _, err := s.qb.Insert(table).Columns(columns...).Values(make([]any, len(columns))...).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert for %s: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	var n int64
	for _, row := range rows {
		for i, v := range row {
			args[i] = bind(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert into %s failed at row %d: %w", table, n, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", table, err)
	}
	return n, nil
}

// bind stores dates as ISO text so they sort and compare as dates.
func bind(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	return v
}
