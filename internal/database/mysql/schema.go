package mysql

import (
	"context"
	"fmt"

	"github.com/Rana718/retailgen/internal/database/common"
	"github.com/Rana718/retailgen/internal/types"
)

func columnType(c types.Column) string {
	switch c.Kind {
	case types.KindInt:
		return "INT"
	case types.KindBigInt:
		return "BIGINT"
	case types.KindDate:
		return "DATE"
	case types.KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", c.Size, c.Scale)
	default:
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		return "TEXT"
	}
}

var dialect = common.Dialect{
	Quote:      func(name string) string { return "`" + name + "`" },
	ColumnType: columnType,
	Suffix:     " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

func (m *Adapter) CreateSchema(ctx context.Context, tables []types.TableDef) error {
	for _, t := range tables {
		if err := common.ValidateIdentifiers(t.Name, t.ColumnNames()); err != nil {
			return err
		}
		if _, err := m.db.ExecContext(ctx, common.CreateTableSQL(t, dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	return nil
}
