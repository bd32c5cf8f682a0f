// Package random generates the per-request nonces of the content security policy.
package random

import (
	"crypto/rand"

	"github.com/myrjola/polyglot/internal/errors"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// rejectAbove is the largest multiple of len(alphabet) that fits a byte. Bytes at or above it are drawn again so
// that every letter is equally likely.
const rejectAbove = 256 - 256%len(alphabet)

// Letters returns n cryptographically random ASCII letters.
func Letters(n uint) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4+1) //nolint:mnd // headroom for rejected bytes
	for uint(len(out)) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", errors.Wrap(err, "read random bytes")
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if uint(len(out)) == n {
				break
			}
		}
	}
	return string(out), nil
}
