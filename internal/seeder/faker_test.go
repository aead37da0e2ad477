package seeder

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/retailgen/internal/distribution"
)

func TestLocalPart(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"Müller", "muller"},
		{"Groß", "gross"},
		{"Łukasz", "lukasz"},
		{"Søren", "soren"},
		{"O'Brien", "obrien"},
		{"de Jong", "dejong"},
		{"Çağan", "cagan"},
		{"Yılmaz", "yilmaz"},
		{"Min-jun", "minjun"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := localPart(tt.in); got != tt.want {
			t.Errorf("localPart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEveryLocaleHasNames(t *testing.T) {
	t.Parallel()
	for _, c := range distribution.DefaultCountries() {
		pool, ok := names[c.Locale]
		if !ok {
			t.Errorf("%s uses locale %q without a name pool", c.Code, c.Locale)
			continue
		}
		if len(pool.first) == 0 || len(pool.last) == 0 {
			t.Errorf("locale %q has an empty pool", c.Locale)
		}
	}
}

func TestFakerFields(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	f := g.faker
	r := rand.New(rand.NewPCG(11, 12))
	email := regexp.MustCompile(`^[a-z0-9.]+@[a-z0-9.-]+\.[a-z]+$`)
	phone := regexp.MustCompile(`^[0-9+() -]+$`)

	oldest := testEnd.AddDate(-91, 0, 1)
	youngest := testEnd.AddDate(-18, 0, 0)
	for i := 0; i < 2000; i++ {
		first, last := f.Name(r, "de")
		dob := f.BirthDate(r)
		if dob.Before(oldest) || dob.After(youngest) {
			t.Fatalf("birth date %s outside [%s, %s]", dob.Format(time.DateOnly),
				oldest.Format(time.DateOnly), youngest.Format(time.DateOnly))
		}

		addr := f.Email(r, first, last, dob.Year())
		if !email.MatchString(addr) {
			t.Fatalf("malformed email %q for %s %s", addr, first, last)
		}
		if local := addr[:strings.IndexByte(addr, '@')]; len(local) < 2 {
			t.Fatalf("local part too short in %q", addr)
		}

		num := f.Phone(r, g.model.Country(0))
		if !phone.MatchString(num) {
			t.Fatalf("malformed phone %q", num)
		}
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	t.Parallel()
	f := newTestGenerator(t).faker
	first, last := f.Name(rand.New(rand.NewPCG(1, 1)), "xx")
	if first == "" || last == "" {
		t.Errorf("expected fallback names, got %q %q", first, last)
	}
}
