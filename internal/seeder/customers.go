package seeder

import (
	"math/rand/v2"

	"github.com/Rana718/retailgen/internal/distribution"
	"github.com/Rana718/retailgen/internal/typo"
)

// CustomerGenerator produces base customers. It holds no mutable state;
// identifiers are assigned later by the stage committer.
type CustomerGenerator struct {
	model *distribution.Model
	faker *Faker
}

func NewCustomerGenerator(model *distribution.Model, faker *Faker) *CustomerGenerator {
	return &CustomerGenerator{model: model, faker: faker}
}

// GenerateBatch returns n fresh base customers without identifiers.
func (g *CustomerGenerator) GenerateBatch(r *rand.Rand, n int) []Customer {
	out := make([]Customer, n)
	for i := range out {
		out[i] = g.register(r, g.newProfile(r))
	}
	return out
}

func (g *CustomerGenerator) newProfile(r *rand.Rand) Profile {
	idx := g.model.CountryIndex(r)
	name, surname := g.faker.Name(r, g.model.Country(idx).Locale)
	return Profile{
		Country:   idx,
		Name:      name,
		Surname:   surname,
		BirthDate: g.faker.BirthDate(r),
	}
}

// register renders p the way a person fills in a registration form: names
// carry the natural typo rate, every other field is independently present or
// absent and formatted.
func (g *CustomerGenerator) register(r *rand.Rand, p Profile) Customer {
	rate := g.model.Rates().NameTypo
	name := typo.Mutate(r, p.Name, rate)
	surname := typo.Mutate(r, p.Surname, rate)
	return g.render(r, p, name, surname)
}

func (g *CustomerGenerator) render(r *rand.Rand, p Profile, name, surname string) Customer {
	rates := g.model.Rates()
	country := g.model.Country(p.Country)

	c := Customer{
		Name:    name,
		Surname: surname,
		Profile: p,
	}
	if g.model.FieldPresent(r, rates.CountryPresent) {
		c.Country = ptr(g.model.DisplayCountry(r, country))
	}

	birthYear := 0
	if g.model.FieldPresent(r, rates.BirthDatePresent) {
		c.BirthDate = ptr(p.BirthDate.Format(g.model.BirthDateFormat(r)))
		birthYear = p.BirthDate.Year()
	}
	if g.model.FieldPresent(r, rates.EmailPresent) {
		c.Email = ptr(g.faker.Email(r, name, surname, birthYear))
	}
	if g.model.FieldPresent(r, rates.PhonePresent) {
		c.Phone = ptr(g.faker.Phone(r, country))
	}
	c.SourceID = g.model.SourceSample(r, rates.EcommerceCustomer)
	return c
}
