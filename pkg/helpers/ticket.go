package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Ticket helpers. A ticket is a single-use, expiring proof for email
// verification or password reset: the raw value is handed out once (inside a
// link) and only its digest is persisted.

const ticketBytes = 32 // 256 bits of entropy

// GenerateTicket returns the raw ticket value and its digest.
func GenerateTicket() (raw string, digest string, err error) {
	b := make([]byte, ticketBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashTicket(raw), nil
}

// HashTicket computes the stored digest for a raw ticket value.
func HashTicket(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
