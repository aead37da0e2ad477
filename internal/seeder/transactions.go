package seeder

import (
	"math/rand/v2"

	"github.com/Rana718/retailgen/internal/distribution"
)

const (
	MinItemsPerOrder = 1
	MaxItemsPerOrder = 10
)

type TransactionGenerator struct {
	model *distribution.Model
}

func NewTransactionGenerator(model *distribution.Model) *TransactionGenerator {
	return &TransactionGenerator{model: model}
}

// GenerateForOrder returns the line items of one order, priced for the
// customer's country. Transaction ids are left zero for the committer.
func (g *TransactionGenerator) GenerateForOrder(r *rand.Rand, o OrderRef) []Transaction {
	country := g.model.Country(o.Country)
	n := MinItemsPerOrder + r.IntN(MaxItemsPerOrder-MinItemsPerOrder+1)
	items := make([]Transaction, n)
	for i := range items {
		category := g.model.CategorySample(r)
		qty := g.model.QuantitySample(r)
		unit := g.model.PriceSample(r, category, country)
		items[i] = Transaction{
			OrderID:     o.ID,
			Product:     g.model.ProductSample(r, category),
			Quantity:    qty,
			UnitPrice:   unit,
			TotalAmount: LineTotal(unit, qty),
		}
	}
	return items
}

func LineTotal(unit distribution.Cents, qty int) distribution.Cents {
	return unit.Times(qty)
}

func OrderTotal(items []Transaction) distribution.Cents {
	var total distribution.Cents
	for _, t := range items {
		total += t.TotalAmount
	}
	return total
}
