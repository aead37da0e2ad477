package seeder

import (
	"math"
	"math/rand/v2"

	"github.com/Rana718/retailgen/internal/distribution"
	"github.com/Rana718/retailgen/internal/typo"
)

// contactRetries bounds how often a fuzzy duplicate re-rolls a contact field
// that happens to equal the source's before dropping it.
const contactRetries = 5

// DuplicatePolicy controls how many base customers get a near-duplicate and
// of which kind.
type DuplicatePolicy struct {
	Rate           float64 // share of base customers with a duplicate
	ExactShare     float64 // share of duplicates matching on contact
	FuzzyTypoShare float64 // share of fuzzy duplicates with a misspelled name
	TypoRate       float64 // per-rune mutation rate for misspelled names
}

func DefaultDuplicatePolicy() DuplicatePolicy {
	return DuplicatePolicy{
		Rate:           0.20,
		ExactShare:     0.80,
		FuzzyTypoShare: 0.50,
		TypoRate:       0.15,
	}
}

// Quota is a number of duplicates to derive, by kind.
type Quota struct {
	Exact     int
	Fuzzy     int
	FuzzyTypo int // subset of Fuzzy
}

func (q Quota) Total() int {
	return q.Exact + q.Fuzzy
}

// Cumulative is the quota for the first base customers of a run.
func (p DuplicatePolicy) Cumulative(base int) Quota {
	dups := int(math.Round(p.Rate * float64(base)))
	exact := int(math.Round(p.ExactShare * float64(dups)))
	fuzzy := dups - exact
	return Quota{
		Exact:     exact,
		Fuzzy:     fuzzy,
		FuzzyTypo: int(math.Round(p.FuzzyTypoShare * float64(fuzzy))),
	}
}

// QuotaBetween is the quota for the batch covering base customers
// [prev, cur). Batch quotas add up to Cumulative(total) whatever the batch
// size, and each component is non-negative because Cumulative is monotone.
func (p DuplicatePolicy) QuotaBetween(prev, cur int) Quota {
	a, b := p.Cumulative(prev), p.Cumulative(cur)
	return Quota{
		Exact:     b.Exact - a.Exact,
		Fuzzy:     b.Fuzzy - a.Fuzzy,
		FuzzyTypo: b.FuzzyTypo - a.FuzzyTypo,
	}
}

// Derived is a duplicate customer together with the batch index of the base
// customer it was derived from.
type Derived struct {
	Customer Customer
	Source   int
	Kind     DuplicateKind
	Typo     bool
}

type InjectStats struct {
	Exact     int
	Fuzzy     int
	FuzzyTypo int
	Demoted   int // exact_contact picks turned fuzzy_name for lack of a contact field
}

func (s *InjectStats) add(o InjectStats) {
	s.Exact += o.Exact
	s.Fuzzy += o.Fuzzy
	s.FuzzyTypo += o.FuzzyTypo
	s.Demoted += o.Demoted
}

// DuplicateInjector derives near-duplicate customers from a batch of base
// customers.
type DuplicateInjector struct {
	customers *CustomerGenerator
	policy    DuplicatePolicy
}

func NewDuplicateInjector(customers *CustomerGenerator, policy DuplicatePolicy) *DuplicateInjector {
	return &DuplicateInjector{customers: customers, policy: policy}
}

func (d *DuplicateInjector) Policy() DuplicatePolicy {
	return d.policy
}

// Inject selects distinct sources from batch according to q and derives one
// duplicate for each. Exact-contact sources must carry an email or a phone;
// when the batch has too few of them the remainder is derived as fuzzy_name.
func (d *DuplicateInjector) Inject(r *rand.Rand, batch []Customer, q Quota) ([]Derived, InjectStats) {
	var stats InjectStats
	want := min(q.Total(), len(batch))
	if want == 0 {
		return nil, stats
	}

	exactWant := min(q.Exact, want)
	exact := make([]int, 0, exactWant)
	rest := make([]int, 0, len(batch))
	for _, i := range r.Perm(len(batch)) {
		if len(exact) < exactWant && batch[i].HasContact() {
			exact = append(exact, i)
			continue
		}
		rest = append(rest, i)
	}
	stats.Demoted = exactWant - len(exact)

	fuzzy := rest[:min(want-len(exact), len(rest))]
	out := make([]Derived, 0, len(exact)+len(fuzzy))
	for _, i := range exact {
		out = append(out, d.derive(r, &batch[i], i, ExactContact, false))
		stats.Exact++
	}
	for n, i := range fuzzy {
		// Demoted picks come last and are never misspelled.
		misspell := n < q.FuzzyTypo
		out = append(out, d.derive(r, &batch[i], i, FuzzyName, misspell))
		stats.Fuzzy++
		if misspell {
			stats.FuzzyTypo++
		}
	}
	return out, stats
}

// derive builds a new registration of the person behind src.
func (d *DuplicateInjector) derive(r *rand.Rand, src *Customer, idx int, kind DuplicateKind, misspell bool) Derived {
	g := d.customers
	var c Customer

	switch kind {
	case ExactContact:
		c = g.register(r, src.Profile)
		c.SourceID = otherChannel(src.SourceID)
		copyEmail := src.Email != nil
		if src.Email != nil && src.Phone != nil {
			copyEmail = r.IntN(2) == 0
		}
		if copyEmail {
			c.Email = ptr(*src.Email)
		} else {
			c.Phone = ptr(*src.Phone)
		}

	case FuzzyName:
		name, surname := src.Name, src.Surname
		if misspell {
			name = typo.Mutate(r, name, d.policy.TypoRate)
			surname = typo.Mutate(r, surname, d.policy.TypoRate)
			if name == src.Name && surname == src.Surname {
				if r.IntN(2) == 0 {
					name = typo.Force(r, name)
				} else {
					surname = typo.Force(r, surname)
				}
			}
		}
		c = g.render(r, src.Profile, name, surname)
		d.distinctContacts(r, &c, src)
	}

	return Derived{Customer: c, Source: idx, Kind: kind, Typo: misspell}
}

// distinctContacts re-rolls email and phone until neither equals the source's.
func (d *DuplicateInjector) distinctContacts(r *rand.Rand, c, src *Customer) {
	g := d.customers
	birthYear := 0
	if c.BirthDate != nil {
		birthYear = c.Profile.BirthDate.Year()
	}

	for i := 0; i < contactRetries && same(c.Email, src.Email); i++ {
		c.Email = ptr(g.faker.Email(r, c.Name, c.Surname, birthYear))
	}
	if same(c.Email, src.Email) {
		c.Email = nil
	}

	country := g.model.Country(c.Profile.Country)
	for i := 0; i < contactRetries && same(c.Phone, src.Phone); i++ {
		c.Phone = ptr(g.faker.Phone(r, country))
	}
	if same(c.Phone, src.Phone) {
		c.Phone = nil
	}
}

// otherChannel is the registration channel an exact-contact duplicate came
// through: the one its source did not use.
func otherChannel(source int) int {
	if source == distribution.SourceEcommerce {
		return distribution.SourcePOS
	}
	return distribution.SourceEcommerce
}

func same(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
