package seeder

import "math/rand/v2"

// CustomerPool is the committed customer id set handed from the customer
// stage to the order stage: ids plus the country each customer lives in.
type CustomerPool struct {
	ids       []string
	countries []int32
}

func (p *CustomerPool) Add(id string, country int) {
	p.ids = append(p.ids, id)
	p.countries = append(p.countries, int32(country))
}

func (p *CustomerPool) Len() int {
	return len(p.ids)
}

// Pick draws a customer uniformly.
func (p *CustomerPool) Pick(r *rand.Rand) (string, int) {
	i := r.IntN(len(p.ids))
	return p.ids[i], int(p.countries[i])
}

// OrderRef is what the transaction stage needs to know about an order.
type OrderRef struct {
	ID      string
	Country int
}

type OrderPool struct {
	orders []OrderRef
}

func (p *OrderPool) Add(ref OrderRef) {
	p.orders = append(p.orders, ref)
}

func (p *OrderPool) Len() int {
	return len(p.orders)
}

// Slice returns orders [from, to).
func (p *OrderPool) Slice(from, to int) []OrderRef {
	return p.orders[from:to]
}
