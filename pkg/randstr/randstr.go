// Package randstr generates random alphanumeric strings, e.g. for secrets
// and keys.
package randstr

import (
	"crypto/rand"
	"math/big"

	"github.com/arthur-debert/viur/pkg/errors"
)

// Alphabet is the set of characters drawn from
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the length used when none is given
const DefaultLength = 13

// Generate returns a random string of n characters from Alphabet
func Generate(n int) (string, error) {
	if n < 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "length must not be negative, got %d", n)
	}

	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot read random source")
		}
		buf[i] = Alphabet[idx.Int64()]
	}
	return string(buf), nil
}
