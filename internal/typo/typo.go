// Package typo injects keyboard-style noise into short strings such as
// personal names. Natural name noise and fuzzy duplicate records both go
// through the same operation table so that their typos share a distribution.
package typo

import (
	"math/rand/v2"
	"unicode"
)

// adjacent maps a lowercase key to its QWERTY neighbours.
var adjacent = map[rune][]rune{
	'a': []rune("sq"), 'b': []rune("vng"), 'c': []rune("xvd"), 'd': []rune("sfec"),
	'e': []rune("wrd"), 'f': []rune("dgt"), 'g': []rune("fhy"), 'h': []rune("gjy"),
	'i': []rune("uok"), 'j': []rune("hkn"), 'k': []rune("jli"), 'l': []rune("ko"),
	'm': []rune("n"), 'n': []rune("mb"), 'o': []rune("ipk"), 'p': []rune("o"),
	'q': []rune("wa"), 'r': []rune("et"), 's': []rune("adz"), 't': []rune("rgy"),
	'u': []rune("yi"), 'v': []rune("cb"), 'w': []rune("qes"), 'x': []rune("czs"),
	'y': []rune("thu"), 'z': []rune("xs"),
}

// An operation edits the head of window and reports the runes to emit in its
// place and how many input runes it consumed. window never extends past a
// rune that must stay untouched.
type operation func(r *rand.Rand, window []rune) (emit []rune, consumed int)

var operations = [...]operation{substitute, remove, transpose}

func substitute(r *rand.Rand, window []rune) ([]rune, int) {
	c := window[0]
	keys := adjacent[unicode.ToLower(c)]
	if len(keys) == 0 {
		return window[:1], 1
	}
	sub := keys[r.IntN(len(keys))]
	if unicode.IsUpper(c) {
		sub = unicode.ToUpper(sub)
	}
	return []rune{sub}, 1
}

func remove(_ *rand.Rand, _ []rune) ([]rune, int) {
	return nil, 1
}

func transpose(_ *rand.Rand, window []rune) ([]rune, int) {
	if len(window) < 2 {
		return window[:1], 1
	}
	return []rune{window[1], window[0]}, 2
}

// Mutate walks text rune by rune and, with independent probability rate,
// applies one of adjacent-key substitution, deletion or transposition with
// the next rune. One randomly chosen rune is always left as is, so a
// non-empty input never mutates to an empty string.
func Mutate(r *rand.Rand, text string, rate float64) string {
	runes := []rune(text)
	if len(runes) == 0 || rate <= 0 {
		return text
	}
	keep := r.IntN(len(runes))

	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); {
		if i == keep || r.Float64() >= rate {
			out = append(out, runes[i])
			i++
			continue
		}
		end := len(runes)
		if i < keep {
			end = keep
		}
		emit, consumed := operations[r.IntN(len(operations))](r, runes[i:end])
		out = append(out, emit...)
		i += consumed
	}
	return string(out)
}

// Force applies exactly one operation and returns a string that differs from
// text whenever that is possible: the input has at least two runes or a rune
// with a keyboard neighbour.
func Force(r *rand.Rand, text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}

	for attempt := 0; attempt < 5; attempt++ {
		i := r.IntN(len(runes))
		op := operations[r.IntN(len(operations))]
		if out := apply(r, runes, i, op); out != text && out != "" {
			return out
		}
	}

	// Deterministic fallbacks, in the order most likely to look natural.
	for i := range runes {
		if out := apply(r, runes, i, substitute); out != text {
			return out
		}
	}
	for i := 0; i+1 < len(runes); i++ {
		if out := apply(r, runes, i, transpose); out != text {
			return out
		}
	}
	if len(runes) >= 2 {
		return apply(r, runes, len(runes)-1, remove)
	}
	return text
}

func apply(r *rand.Rand, runes []rune, i int, op operation) string {
	emit, consumed := op(r, runes[i:])
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:i]...)
	out = append(out, emit...)
	out = append(out, runes[i+consumed:]...)
	return string(out)
}
