// Package pin implements the 4-digit transaction-authorization credential.
//
// Credentials are stored as salted bcrypt digests and verified in constant
// time; the stored hash is never comparable across accounts. Setup, change
// and reset all route through the one Hasher so every path stays
// consistent.
package pin

import (
	"golang.org/x/crypto/bcrypt"

	"cashpoint/internal/errors"
	"cashpoint/internal/validation"
)

// Length of a well-formed PIN.
const Length = 4

type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash digests a raw PIN. PINs that are not exactly 4 digits are rejected
// before hashing.
func (h *Hasher) Hash(raw string) (string, error) {
	if !validation.IsPin(raw) {
		return "", errors.ErrInvalidPin
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares a raw PIN against a stored digest. An unset credential
// never verifies.
func (h *Hasher) Verify(raw, storedHash string) bool {
	if storedHash == "" || !validation.IsPin(raw) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)) == nil
}
