package database

import (
	"strings"
	"testing"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/Rana718/retailgen/internal/database/common"
	"github.com/Rana718/retailgen/internal/types"
)

func TestSchemaDependencies(t *testing.T) {
	tables := Schema(true)
	if len(tables) != 4 {
		t.Fatalf("expected 4 tables with links, got %d", len(tables))
	}
	if len(Schema(false)) != 3 {
		t.Errorf("expected 3 tables without links")
	}

	deps := map[string][]string{}
	for _, tbl := range tables {
		deps[tbl.Name] = tbl.Dependencies()
		if tbl.PrimaryKey() < 0 {
			t.Errorf("table %s has no primary key", tbl.Name)
		}
	}
	if got := deps[types.TableOrders]; len(got) != 1 || got[0] != types.TableCustomers {
		t.Errorf("orders should depend on customers, got %v", got)
	}
	if got := deps[types.TableTransactions]; len(got) != 1 || got[0] != types.TableOrders {
		t.Errorf("transactions should depend on orders, got %v", got)
	}
	if got := deps[types.TableDuplicates]; len(got) != 1 || got[0] != types.TableCustomers {
		t.Errorf("customer_duplicates should depend on customers once, got %v", got)
	}
}

func TestCreateTableSQL(t *testing.T) {
	var orders types.TableDef
	for _, table := range Schema(false) {
		if table.Name == types.TableOrders {
			orders = table
		}
	}
	if orders.Name == "" {
		t.Fatal("orders table not found")
	}
	d := common.Dialect{
		Quote: func(s string) string { return `"` + s + `"` },
		ColumnType: func(c types.Column) string {
			if c.Kind == types.KindDate {
				return "DATE"
			}
			return "TEXT"
		},
	}

	sql := common.CreateTableSQL(orders, d)
	for _, want := range []string{
		`CREATE TABLE IF NOT EXISTS "orders"`,
		`"order_id" TEXT NOT NULL`,
		`"order_date" DATE NOT NULL`,
		`PRIMARY KEY ("order_id")`,
		`FOREIGN KEY ("customer_id") REFERENCES "customers" ("customer_id")`,
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("expected %q in:\n%s", want, sql)
		}
	}
}

func TestValidateIdentifiers(t *testing.T) {
	if err := common.ValidateIdentifiers("orders", []string{"order_id"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := common.ValidateIdentifiers("orders; DROP", nil); err == nil {
		t.Error("expected invalid table name error")
	}
	if err := common.ValidateIdentifiers("orders", []string{"a b"}); err == nil {
		t.Error("expected invalid column name error")
	}
}

func TestNewSink(t *testing.T) {
	for _, p := range config.Providers {
		if _, err := NewSink(p); err != nil {
			t.Errorf("NewSink(%q) failed: %v", p, err)
		}
	}
	if _, err := NewSink("oracle"); err == nil {
		t.Error("expected error for unknown provider")
	}
}
