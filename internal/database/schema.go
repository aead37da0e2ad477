package database

import "github.com/Rana718/retailgen/internal/types"

func ref(table, column string) *types.Reference {
	return &types.Reference{Table: table, Column: column}
}

// Schema returns the target tables. customer_duplicates is included only when
// links are emitted.
func Schema(withLinks bool) []types.TableDef {
	tables := []types.TableDef{
		{
			Name: types.TableCustomers,
			Columns: []types.Column{
				{Name: "customer_id", Kind: types.KindText, Size: 10, IsPrimary: true},
				{Name: "country", Kind: types.KindText, Size: 100, Nullable: true},
				{Name: "name", Kind: types.KindText, Size: 100},
				{Name: "surname", Kind: types.KindText, Size: 100},
				{Name: "date_of_birth", Kind: types.KindText, Size: 20, Nullable: true},
				{Name: "email", Kind: types.KindText, Size: 255, Nullable: true},
				{Name: "mobile_phone_number", Kind: types.KindText, Size: 50, Nullable: true},
				{Name: "source_id", Kind: types.KindInt},
			},
		},
		{
			Name: types.TableOrders,
			Columns: []types.Column{
				{Name: "order_id", Kind: types.KindText, Size: 14, IsPrimary: true},
				{Name: "customer_id", Kind: types.KindText, Size: 10, References: ref(types.TableCustomers, "customer_id")},
				{Name: "source_id", Kind: types.KindInt},
				{Name: "order_date", Kind: types.KindDate},
			},
		},
		{
			Name: types.TableTransactions,
			Columns: []types.Column{
				{Name: "transaction_id", Kind: types.KindBigInt, IsPrimary: true},
				{Name: "order_id", Kind: types.KindText, Size: 14, References: ref(types.TableOrders, "order_id")},
				{Name: "product", Kind: types.KindText, Size: 100},
				{Name: "quantity", Kind: types.KindInt},
				{Name: "unit_price", Kind: types.KindDecimal, Size: 10, Scale: 2},
				{Name: "total_amount", Kind: types.KindDecimal, Size: 10, Scale: 2},
			},
		},
	}

	if withLinks {
		tables = append(tables, types.TableDef{
			Name: types.TableDuplicates,
			Columns: []types.Column{
				{Name: "primary_id", Kind: types.KindText, Size: 10, References: ref(types.TableCustomers, "customer_id")},
				{Name: "duplicate_id", Kind: types.KindText, Size: 10, IsPrimary: true, References: ref(types.TableCustomers, "customer_id")},
				{Name: "match_kind", Kind: types.KindText, Size: 20},
			},
		})
	}
	return tables
}
