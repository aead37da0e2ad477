package postgres

import (
	"context"
	"fmt"

	"github.com/Rana718/retailgen/internal/database/common"
	"github.com/Rana718/retailgen/internal/types"
	"github.com/jackc/pgx/v5"
)

func columnType(c types.Column) string {
	switch c.Kind {
	case types.KindInt:
		return "INTEGER"
	case types.KindBigInt:
		return "BIGINT"
	case types.KindDate:
		return "DATE"
	case types.KindDecimal:
		return fmt.Sprintf("NUMERIC(%d,%d)", c.Size, c.Scale)
	default:
		if c.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", c.Size)
		}
		return "TEXT"
	}
}

var dialect = common.Dialect{
	Quote:      func(name string) string { return pgx.Identifier{name}.Sanitize() },
	ColumnType: columnType,
}

func (p *Adapter) CreateSchema(ctx context.Context, tables []types.TableDef) error {
	for _, t := range tables {
		if err := common.ValidateIdentifiers(t.Name, t.ColumnNames()); err != nil {
			return err
		}
		if _, err := p.pool.Exec(ctx, common.CreateTableSQL(t, dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	return nil
}
