package booking

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/speps/go-hashids/v2"
)

const (
	numberPrefix = "HB-"
	// Uppercase without 0/O and I to keep numbers readable over the
	// phone. hashids derives its separators from this set.
	numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ123456789"
)

// NumberGenerator produces booking references like HB-7K2MQ9XD by
// hashing the creation timestamp with a random component. Collisions
// are practically impossible but the booking_number UNIQUE constraint
// backs it up; callers retry on a duplicate.
type NumberGenerator struct {
	h *hashids.HashID
}

func NewNumberGenerator(salt string) (*NumberGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	hd.Alphabet = numberAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("could not build booking number generator: %w", err)
	}
	return &NumberGenerator{h: h}, nil
}

func (g *NumberGenerator) Generate() (string, error) {
	code, err := g.h.EncodeInt64([]int64{time.Now().UnixMilli(), rand.Int63n(1 << 32)})
	if err != nil {
		return "", fmt.Errorf("could not encode booking number: %w", err)
	}
	return numberPrefix + code, nil
}
