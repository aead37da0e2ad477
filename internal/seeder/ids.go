package seeder

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrIDSpaceExhausted = errors.New("identifier space exhausted")

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// IDAllocator hands out collision-checked random identifiers. It has a single
// owner, the stage committer, so it needs no locking.
type IDAllocator struct {
	r       *rand.Rand
	prefix  string
	length  int
	retries int
	issued  map[string]struct{}
}

// NewIDAllocator returns an allocator of prefix followed by length characters
// of [A-Z0-9]. Each Next call gives up after retries collisions.
func NewIDAllocator(r *rand.Rand, prefix string, length, retries int) *IDAllocator {
	if retries < 1 {
		retries = 1
	}
	return &IDAllocator{
		r:       r,
		prefix:  prefix,
		length:  length,
		retries: retries,
		issued:  make(map[string]struct{}),
	}
}

func (a *IDAllocator) Next() (string, error) {
	buf := make([]byte, len(a.prefix)+a.length)
	copy(buf, a.prefix)
	for attempt := 0; attempt < a.retries; attempt++ {
		for i := len(a.prefix); i < len(buf); i++ {
			buf[i] = idAlphabet[a.r.IntN(len(idAlphabet))]
		}
		id := string(buf)
		if _, taken := a.issued[id]; !taken {
			a.issued[id] = struct{}{}
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %d ids issued, %d collisions in a row", ErrIDSpaceExhausted, len(a.issued), a.retries)
}

func (a *IDAllocator) Issued() int {
	return len(a.issued)
}
