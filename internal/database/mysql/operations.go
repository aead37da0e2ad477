package mysql

import (
	"context"
	"fmt"
)

// maxPlaceholders is the server's limit on bound parameters per statement.
const maxPlaceholders = 65535

func (m *Adapter) Truncate(ctx context.Context, tables []string) error {
	for _, t := range tables {
		if _, err := m.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM `%s`", t)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", t, err)
		}
	}
	return nil
}

// Append writes rows as multi-row INSERTs inside one transaction. Rows are
// split across statements to stay under the placeholder limit.
func (m *Adapter) Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	perStatement := maxPlaceholders / len(columns)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for start := 0; start < len(rows); start += perStatement {
		end := min(start+perStatement, len(rows))

		insert := m.qb.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			insert = insert.Values(row...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert into %s failed: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows for %s: %w", table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert into %s: %w", table, err)
	}
	return total, nil
}
