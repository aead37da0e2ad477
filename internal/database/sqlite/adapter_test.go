package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/retailgen/internal/types"
)

func openTest(t *testing.T) *Adapter {
	t.Helper()
	ctx := context.Background()
	s := New()
	if err := s.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "retail.db")); err != nil {
		if strings.Contains(err.Error(), "CGO_ENABLED") {
			t.Skip("sqlite driver needs cgo")
		}
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func schema() []types.TableDef {
	return []types.TableDef{
		{Name: "customers", Columns: []types.Column{
			{Name: "customer_id", Kind: types.KindText, Size: 10, IsPrimary: true},
		}},
		{Name: "orders", Columns: []types.Column{
			{Name: "order_id", Kind: types.KindText, Size: 14, IsPrimary: true},
			{Name: "customer_id", Kind: types.KindText, Size: 10, References: &types.Reference{Table: "customers", Column: "customer_id"}},
			{Name: "order_date", Kind: types.KindDate},
		}},
		{Name: "transactions", Columns: []types.Column{
			{Name: "transaction_id", Kind: types.KindBigInt, IsPrimary: true},
			{Name: "order_id", Kind: types.KindText, Size: 14, References: &types.Reference{Table: "orders", Column: "order_id"}},
			{Name: "quantity", Kind: types.KindInt},
			{Name: "unit_price", Kind: types.KindDecimal, Size: 10, Scale: 2},
			{Name: "total_amount", Kind: types.KindDecimal, Size: 10, Scale: 2},
		}},
	}
}

func TestAppendAndVerify(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	if err := s.CreateSchema(ctx, schema()); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	if n, err := s.Append(ctx, "customers", []string{"customer_id"}, [][]any{{"C1"}, {"C2"}}); err != nil || n != 2 {
		t.Fatalf("Append customers: n=%d err=%v", n, err)
	}
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.Append(ctx, "orders", []string{"order_id", "customer_id", "order_date"}, [][]any{
		{"ORD-1", "C1", date},
	}); err != nil {
		t.Fatalf("Append orders failed: %v", err)
	}
	if _, err := s.Append(ctx, "transactions", []string{"transaction_id", "order_id", "quantity", "unit_price", "total_amount"}, [][]any{
		{int64(1), "ORD-1", 2, "10.00", "20.00"},
		{int64(2), "ORD-1", 1, "5.50", "5.50"},
		{int64(3), "ORD-1", 4, "2.25", "9.00"},
	}); err != nil {
		t.Fatalf("Append transactions failed: %v", err)
	}

	v, err := s.Verify(ctx)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if problems := v.Problems(); len(problems) != 0 {
		t.Errorf("unexpected problems: %v", problems)
	}
	if v.Counts["transactions"] != 3 {
		t.Errorf("expected 3 transactions, got %d", v.Counts["transactions"])
	}

	stored, err := s.QueryInt(ctx, `SELECT COUNT(*) FROM orders WHERE order_date = '2024-03-01'`)
	if err != nil || stored != 1 {
		t.Errorf("expected order date stored as ISO text: n=%d err=%v", stored, err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	if err := s.CreateSchema(ctx, schema()); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	_, err := s.Append(ctx, "orders", []string{"order_id", "customer_id", "order_date"}, [][]any{
		{"ORD-1", "missing", time.Now()},
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
	if n, _ := s.QueryInt(ctx, "SELECT COUNT(*) FROM orders"); n != 0 {
		t.Errorf("failed append must roll back, found %d rows", n)
	}
}
