package utils

import "crypto/rand"

const (
	refCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refCodeLength   = 9
)

// NewReferenceCode returns the short human-readable code attached to ledger
// entries. It exists for support lookups and for correlating the two sides
// of a transfer; it is not a uniqueness guarantee. Safe to call inside a
// retried transaction body.
func NewReferenceCode() string {
	b := make([]byte, refCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate reference code: " + err.Error())
	}
	for i := range b {
		b[i] = refCodeAlphabet[int(b[i])%len(refCodeAlphabet)]
	}
	return string(b)
}
