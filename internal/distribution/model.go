// Package distribution holds the statistical model behind generated rows:
// country weights, purchasing power, field presence rates and the product
// catalog. A Model is immutable once built and safe for concurrent use; all
// randomness comes from the *rand.Rand the caller passes in.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

// ErrInvalidDistribution reports a model that cannot be sampled from.
var ErrInvalidDistribution = errors.New("invalid distribution")

// Source channels a customer registered or an order was placed through.
const (
	SourceEcommerce = 1
	SourcePOS       = 2
)

// Rates are the probabilities that drive field presence and noise.
type Rates struct {
	CountryPresent    float64
	BirthDatePresent  float64
	EmailPresent      float64
	PhonePresent      float64
	NameBasedEmail    float64
	EcommerceCustomer float64
	EcommerceOrder    float64
	NameTypo          float64
	PriceNoise        float64
}

func DefaultRates() Rates {
	return Rates{
		CountryPresent:    0.95,
		BirthDatePresent:  0.50,
		EmailPresent:      0.80,
		PhonePresent:      0.75,
		NameBasedEmail:    0.60,
		EcommerceCustomer: 0.40,
		EcommerceOrder:    0.50,
		NameTypo:          0.03,
		PriceNoise:        0.05,
	}
}

func (r Rates) validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"country_present", r.CountryPresent},
		{"birth_date_present", r.BirthDatePresent},
		{"email_present", r.EmailPresent},
		{"phone_present", r.PhonePresent},
		{"name_based_email", r.NameBasedEmail},
		{"ecommerce_customer", r.EcommerceCustomer},
		{"ecommerce_order", r.EcommerceOrder},
		{"name_typo", r.NameTypo},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < 0 || c.v > 1 {
			return fmt.Errorf("%w: rate %s=%v outside [0,1]", ErrInvalidDistribution, c.name, c.v)
		}
	}
	if math.IsNaN(r.PriceNoise) || r.PriceNoise < 0 || r.PriceNoise >= 1 {
		return fmt.Errorf("%w: price_noise=%v outside [0,1)", ErrInvalidDistribution, r.PriceNoise)
	}
	return nil
}

// Catalog is the list of product categories.
type Catalog []Category

type Model struct {
	countries   []CountryProfile
	countryCum  []float64
	rates       Rates
	catalog     Catalog
	categoryCum []float64
	domainCum   []float64
	layoutCum   []float64
	quantityCum []float64
}

// NewModel validates the inputs and precomputes cumulative weights. An empty
// country set, a non-positive weight sum or an unusable catalog is reported as
// ErrInvalidDistribution.
func NewModel(countries []CountryProfile, rates Rates, catalog Catalog) (*Model, error) {
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: no countries configured", ErrInvalidDistribution)
	}
	if err := rates.validate(); err != nil {
		return nil, err
	}

	weights := make([]float64, len(countries))
	for i, c := range countries {
		if c.PurchasingPower <= 0 {
			return nil, fmt.Errorf("%w: country %s has purchasing power %v", ErrInvalidDistribution, c.Code, c.PurchasingPower)
		}
		weights[i] = c.Weight
	}
	countryCum, err := cumulative(weights)
	if err != nil {
		return nil, fmt.Errorf("country weights: %w", err)
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: empty product catalog", ErrInvalidDistribution)
	}
	weights = make([]float64, len(catalog))
	for i, c := range catalog {
		if len(c.Products) == 0 {
			return nil, fmt.Errorf("%w: category %q has no products", ErrInvalidDistribution, c.Name)
		}
		if c.MinPrice <= 0 || c.MaxPrice < c.MinPrice {
			return nil, fmt.Errorf("%w: category %q has price range %s..%s", ErrInvalidDistribution, c.Name, c.MinPrice, c.MaxPrice)
		}
		weights[i] = c.Weight
	}
	categoryCum, err := cumulative(weights)
	if err != nil {
		return nil, fmt.Errorf("category weights: %w", err)
	}

	m := &Model{
		countries:   append([]CountryProfile(nil), countries...),
		countryCum:  countryCum,
		rates:       rates,
		catalog:     append(Catalog(nil), catalog...),
		categoryCum: categoryCum,
		quantityCum: mustCumulative(quantityWeights),
		domainCum:   mustCumulative(labelWeights(emailDomains)),
		layoutCum:   mustCumulative(labelWeights(birthDateLayouts)),
	}
	return m, nil
}

// WithWeights returns a copy of countries with weights replaced by the
// overrides, keyed by ISO code (case-insensitive). A key naming no country is
// an error.
func WithWeights(countries []CountryProfile, overrides map[string]float64) ([]CountryProfile, error) {
	out := append([]CountryProfile(nil), countries...)
	if len(overrides) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i := range out {
		index[strings.ToUpper(out[i].Code)] = i
	}
	for code, w := range overrides {
		i, ok := index[strings.ToUpper(code)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown country code %q in weights", ErrInvalidDistribution, code)
		}
		out[i].Weight = w
	}
	return out, nil
}

func (m *Model) Rates() Rates { return m.rates }

func (m *Model) Countries() int { return len(m.countries) }

// Country returns the profile at index i as handed out by CountryIndex.
func (m *Model) Country(i int) CountryProfile { return m.countries[i] }

// CountryIndex draws a country index proportionally to its weight.
func (m *Model) CountryIndex(r *rand.Rand) int {
	return pick(r, m.countryCum)
}

// CountrySample draws a country proportionally to its weight. Draws are
// independent and with replacement.
func (m *Model) CountrySample(r *rand.Rand) CountryProfile {
	return m.countries[m.CountryIndex(r)]
}

// FieldPresent is a Bernoulli draw with probability p.
func (m *Model) FieldPresent(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// DisplayCountry renders c as its native name, ISO code or English name,
// chosen uniformly.
func (m *Model) DisplayCountry(r *rand.Rand, c CountryProfile) string {
	return c.Display(r.IntN(displayVariants))
}

// BirthDateFormat returns a Go time layout for rendering birth dates.
func (m *Model) BirthDateFormat(r *rand.Rand) string {
	return birthDateLayouts[pick(r, m.layoutCum)].Value
}

func (m *Model) EmailDomain(r *rand.Rand) string {
	return emailDomains[pick(r, m.domainCum)].Value
}

// SourceSample returns SourceEcommerce with probability ecommerce, otherwise
// SourcePOS.
func (m *Model) SourceSample(r *rand.Rand, ecommerce float64) int {
	if r.Float64() < ecommerce {
		return SourceEcommerce
	}
	return SourcePOS
}

func (m *Model) CategorySample(r *rand.Rand) Category {
	return m.catalog[pick(r, m.categoryCum)]
}

func (m *Model) ProductSample(r *rand.Rand, c Category) string {
	return c.Products[r.IntN(len(c.Products))]
}

// QuantitySample returns 1..5, skewed toward single units.
func (m *Model) QuantitySample(r *rand.Rand) int {
	return pick(r, m.quantityCum) + 1
}

// PriceSample draws a base price uniformly within the category range, scales
// it by the country's purchasing power and perturbs it by the configured
// multiplicative noise. The result is never below one cent.
func (m *Model) PriceSample(r *rand.Rand, c Category, country CountryProfile) Cents {
	lo, hi := float64(c.MinPrice), float64(c.MaxPrice)
	base := lo + r.Float64()*(hi-lo)
	noise := 1 + (2*r.Float64()-1)*m.rates.PriceNoise
	price := Cents(math.Round(base * country.PurchasingPower * noise))
	if price < 1 {
		price = 1
	}
	return price
}

func cumulative(weights []float64) ([]float64, error) {
	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: weight %v at position %d", ErrInvalidDistribution, w, i)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidDistribution)
	}
	return cum, nil
}

func mustCumulative(weights []float64) []float64 {
	cum, err := cumulative(weights)
	if err != nil {
		panic(err)
	}
	return cum
}

func labelWeights(ws []weightedString) []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = w.Weight
	}
	return out
}

// pick returns the first index whose cumulative weight exceeds a uniform draw,
// so zero-weight entries are never chosen.
func pick(r *rand.Rand, cum []float64) int {
	x := r.Float64() * cum[len(cum)-1]
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > x })
	if i == len(cum) {
		i--
	}
	return i
}
