package seeder

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Rana718/retailgen/internal/distribution"
)

var testEnd = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T) *CustomerGenerator {
	t.Helper()
	model, err := distribution.NewModel(distribution.DefaultCountries(), distribution.DefaultRates(), distribution.DefaultCatalog())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return NewCustomerGenerator(model, NewFaker(model, testEnd))
}

func TestQuotasAddUpAcrossBatchSizes(t *testing.T) {
	t.Parallel()
	p := DefaultDuplicatePolicy()

	for _, total := range []int{0, 1, 7, 100, 999, 12345} {
		want := p.Cumulative(total)
		for _, size := range []int{1, 3, 64, 1000} {
			var sum Quota
			for lo := 0; lo < total; lo += size {
				q := p.QuotaBetween(lo, min(lo+size, total))
				if q.Exact < 0 || q.Fuzzy < 0 || q.FuzzyTypo < 0 || q.FuzzyTypo > q.Fuzzy {
					t.Fatalf("total=%d size=%d: bad batch quota %+v", total, size, q)
				}
				if q.Total() > min(lo+size, total)-lo {
					t.Fatalf("total=%d size=%d: quota %+v exceeds batch", total, size, q)
				}
				sum.Exact += q.Exact
				sum.Fuzzy += q.Fuzzy
				sum.FuzzyTypo += q.FuzzyTypo
			}
			if sum != want {
				t.Errorf("total=%d size=%d: batches sum to %+v, want %+v", total, size, sum, want)
			}
		}
	}
}

func TestCumulativeQuota(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base int
		want Quota
	}{
		{100, Quota{Exact: 16, Fuzzy: 4, FuzzyTypo: 2}},
		{500000, Quota{Exact: 80000, Fuzzy: 20000, FuzzyTypo: 10000}},
		{3, Quota{Exact: 1, Fuzzy: 0, FuzzyTypo: 0}},
	}
	for _, tt := range tests {
		if got := DefaultDuplicatePolicy().Cumulative(tt.base); got != tt.want {
			t.Errorf("Cumulative(%d) = %+v, want %+v", tt.base, got, tt.want)
		}
	}
}

func TestInjectDemotesWithoutContacts(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	r := rand.New(rand.NewPCG(1, 2))

	batch := g.GenerateBatch(r, 50)
	for i := range batch {
		batch[i].Email, batch[i].Phone = nil, nil
	}
	inj := NewDuplicateInjector(g, DefaultDuplicatePolicy())
	q := Quota{Exact: 8, Fuzzy: 2, FuzzyTypo: 1}
	derived, stats := inj.Inject(r, batch, q)

	if len(derived) != 10 {
		t.Fatalf("expected 10 duplicates, got %d", len(derived))
	}
	if stats.Demoted != 8 || stats.Exact != 0 || stats.Fuzzy != 10 || stats.FuzzyTypo != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	for _, d := range derived {
		if d.Kind != FuzzyName {
			t.Errorf("expected only fuzzy_name duplicates, got %v", d.Kind)
		}
	}
}

func TestInjectPicksDistinctSources(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	r := rand.New(rand.NewPCG(3, 4))
	batch := g.GenerateBatch(r, 40)

	derived, _ := NewDuplicateInjector(g, DefaultDuplicatePolicy()).Inject(r, batch, Quota{Exact: 30, Fuzzy: 10})
	seen := make(map[int]bool)
	for _, d := range derived {
		if seen[d.Source] {
			t.Fatalf("source %d used twice", d.Source)
		}
		seen[d.Source] = true
	}
	if len(seen) != 40 {
		t.Errorf("expected every customer to be used once, got %d", len(seen))
	}
}

func TestDeriveExactContact(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	inj := NewDuplicateInjector(g, DefaultDuplicatePolicy())
	r := rand.New(rand.NewPCG(5, 6))

	for i := 0; i < 500; i++ {
		src := g.GenerateBatch(r, 1)[0]
		if !src.HasContact() {
			continue
		}
		d := inj.derive(r, &src, 0, ExactContact, false)
		if !same(d.Customer.Email, src.Email) && !same(d.Customer.Phone, src.Phone) {
			t.Fatalf("exact duplicate %+v shares no contact with %+v", d.Customer, src)
		}
		if d.Customer.Profile != src.Profile {
			t.Fatalf("exact duplicate must describe the same person")
		}
		if d.Customer.SourceID == src.SourceID {
			t.Fatalf("exact duplicate registered on the source's channel %d", src.SourceID)
		}
	}
}

func TestDeriveFuzzyName(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	inj := NewDuplicateInjector(g, DefaultDuplicatePolicy())
	r := rand.New(rand.NewPCG(7, 8))

	for i := 0; i < 500; i++ {
		src := g.GenerateBatch(r, 1)[0]
		misspell := i%2 == 0
		d := inj.derive(r, &src, 0, FuzzyName, misspell)
		c := d.Customer

		sameName := c.Name == src.Name && c.Surname == src.Surname
		if misspell && sameName {
			t.Fatalf("misspelled duplicate kept %q %q", c.Name, c.Surname)
		}
		if !misspell && !sameName {
			t.Fatalf("plain fuzzy duplicate changed %q %q to %q %q", src.Name, src.Surname, c.Name, c.Surname)
		}
		if same(c.Email, src.Email) || same(c.Phone, src.Phone) {
			t.Fatalf("fuzzy duplicate reused a contact field")
		}
	}
}

// Large-N convergence of field presence and duplicate shares, counted over
// every row the customer stage emits.
func TestCustomerConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 500k customer convergence in short mode")
	}
	t.Parallel()

	g := newTestGenerator(t)
	inj := NewDuplicateInjector(g, DefaultDuplicatePolicy())
	const total, size = 500000, 10000

	var country, email, rows int
	var baseEmail, baseRows int
	var exact, fuzzy int
	count := func(c *Customer) {
		rows++
		if c.Country != nil {
			country++
		}
		if c.Email != nil {
			email++
		}
	}

	for lo := 0; lo < total; lo += size {
		r := rand.New(rand.NewPCG(42, uint64(lo)))
		batch := g.GenerateBatch(r, size)
		derived, _ := inj.Inject(r, batch, inj.Policy().QuotaBetween(lo, lo+size))

		for i := range batch {
			count(&batch[i])
			baseRows++
			if batch[i].Email != nil {
				baseEmail++
			}
		}
		for _, d := range derived {
			src := &batch[d.Source]
			c := &d.Customer
			shared := same(c.Email, src.Email) || same(c.Phone, src.Phone)
			switch d.Kind {
			case ExactContact:
				exact++
				if !shared {
					t.Fatalf("exact_contact duplicate shares no contact with its source")
				}
			case FuzzyName:
				fuzzy++
				if shared {
					t.Fatalf("fuzzy_name duplicate shares a contact with its source")
				}
			}
			count(c)
		}
	}

	within := func(name string, got, want, tol float64) {
		if math.Abs(got-want) > tol {
			t.Errorf("%s = %.4f, want %.2f ± %.3f", name, got, want, tol)
		}
	}
	if rows != total+exact+fuzzy {
		t.Fatalf("rows = %d, want %d base plus %d duplicates", rows, total, exact+fuzzy)
	}
	within("country present", float64(country)/float64(rows), 0.95, 0.005)
	within("base email present", float64(baseEmail)/float64(baseRows), 0.80, 0.005)
	// Exact duplicates always keep a contact field, which lifts email
	// presence over all rows to about 0.814.
	within("email present", float64(email)/float64(rows), 0.80, 0.02)

	dups := exact + fuzzy
	within("duplicate share", float64(dups)/total, 0.20, 0.001)
	within("exact share", float64(exact)/float64(dups), 0.80, 0.005)
	within("fuzzy share", float64(fuzzy)/float64(dups), 0.20, 0.005)
}
