package seeder

import (
	"math/rand/v2"
	"time"

	"github.com/Rana718/retailgen/internal/distribution"
)

type OrderGenerator struct {
	model *distribution.Model
	start time.Time
	days  int
}

// NewOrderGenerator places orders on calendar days in [start, end].
func NewOrderGenerator(model *distribution.Model, start, end time.Time) *OrderGenerator {
	start = truncateDay(start)
	days := int(truncateDay(end).Sub(start).Hours() / 24)
	return &OrderGenerator{model: model, start: start, days: max(days, 0)}
}

// GenerateBatch returns n orders without identifiers. Customers are drawn
// uniformly from the committed pool, and the order channel is independent of
// the channel the customer registered through.
func (g *OrderGenerator) GenerateBatch(r *rand.Rand, n int, pool *CustomerPool) []Order {
	ecommerce := g.model.Rates().EcommerceOrder
	out := make([]Order, n)
	for i := range out {
		id, country := pool.Pick(r)
		out[i] = Order{
			CustomerID: id,
			Country:    country,
			OrderDate:  g.start.AddDate(0, 0, r.IntN(g.days+1)),
			SourceID:   g.model.SourceSample(r, ecommerce),
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
