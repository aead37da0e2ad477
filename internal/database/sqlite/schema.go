package sqlite

import (
	"context"
	"fmt"

	"github.com/Rana718/retailgen/internal/database/common"
	"github.com/Rana718/retailgen/internal/types"
)

// SQLite only has storage classes; declared types pick the affinity.
func columnType(c types.Column) string {
	switch c.Kind {
	case types.KindInt, types.KindBigInt:
		return "INTEGER"
	case types.KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", c.Size, c.Scale)
	default:
		return "TEXT"
	}
}

var dialect = common.Dialect{
	Quote:      func(name string) string { return `"` + name + `"` },
	ColumnType: columnType,
}

func (s *Adapter) CreateSchema(ctx context.Context, tables []types.TableDef) error {
	for _, t := range tables {
		if err := common.ValidateIdentifiers(t.Name, t.ColumnNames()); err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, common.CreateTableSQL(t, dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	return nil
}
