package typo

import (
	"math/rand/v2"
	"testing"
	"unicode/utf8"
)

func TestMutateKeepsAtLeastOneRune(t *testing.T) {
	inputs := []string{"a", "Jo", "Smith", "Müller", "García", "O'Brien", "李"}
	r := rand.New(rand.NewPCG(1, 1))

	for _, in := range inputs {
		for i := 0; i < 2000; i++ {
			out := Mutate(r, in, 1.0)
			if out == "" {
				t.Fatalf("Mutate(%q, 1.0) produced an empty string", in)
			}
			if !utf8.ValidString(out) {
				t.Fatalf("Mutate(%q) produced invalid UTF-8: %q", in, out)
			}
		}
	}
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	r := rand.New(rand.NewPCG(2, 2))
	for _, in := range []string{"", "Anna", "Kowalski"} {
		if out := Mutate(r, in, 0); out != in {
			t.Errorf("Mutate(%q, 0) = %q", in, out)
		}
	}
	if out := Mutate(r, "", 1); out != "" {
		t.Errorf("Mutate of empty string = %q", out)
	}
}

func TestMutateLengthBounds(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	in := "Christopher"
	n := utf8.RuneCountInString(in)
	for i := 0; i < 5000; i++ {
		out := Mutate(r, in, 0.5)
		m := utf8.RuneCountInString(out)
		if m < 1 || m > n {
			t.Fatalf("Mutate(%q) length %d outside [1,%d]: %q", in, m, n, out)
		}
	}
}

func TestMutateIsDeterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 7))
	b := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 500; i++ {
		x, y := Mutate(a, "Alexandra", 0.3), Mutate(b, "Alexandra", 0.3)
		if x != y {
			t.Fatalf("iteration %d: %q != %q", i, x, y)
		}
	}
}

func TestMutateRateControlsChanges(t *testing.T) {
	r := rand.New(rand.NewPCG(4, 4))
	changed := func(rate float64) int {
		n := 0
		for i := 0; i < 2000; i++ {
			if Mutate(r, "Jonathan", rate) != "Jonathan" {
				n++
			}
		}
		return n
	}
	low, high := changed(0.01), changed(0.3)
	if low >= high {
		t.Errorf("expected more changes at higher rate: low=%d high=%d", low, high)
	}
}

func TestSubstitutionPreservesCase(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 5))
	for i := 0; i < 200; i++ {
		emit, consumed := substitute(r, []rune("A"))
		if consumed != 1 || len(emit) != 1 {
			t.Fatalf("unexpected substitution result %q/%d", string(emit), consumed)
		}
		if emit[0] != 'S' && emit[0] != 'Q' {
			t.Fatalf("expected uppercase neighbour of A, got %q", string(emit))
		}
	}
}

func TestForceAlwaysDiffers(t *testing.T) {
	inputs := []string{"a", "ab", "aa", "11", "Ann", "Smith", "José", "李明"}
	r := rand.New(rand.NewPCG(6, 6))

	for _, in := range inputs {
		for i := 0; i < 500; i++ {
			out := Force(r, in)
			if out == in {
				t.Fatalf("Force(%q) returned the input", in)
			}
			if out == "" {
				t.Fatalf("Force(%q) returned an empty string", in)
			}
		}
	}
}

func TestForceWithoutOptions(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 8))
	if out := Force(r, "7"); out != "7" {
		t.Errorf("single rune without neighbours should be unchanged, got %q", out)
	}
	if out := Force(r, ""); out != "" {
		t.Errorf("empty input should stay empty, got %q", out)
	}
}
