package utils

import (
	"crypto/rand"
	"math/big"
)

// Alphabet for public profile IDs. Ambiguous glyphs (0/O, 1/I/l) are left
// out because the ID is user-facing.
const idAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomID returns a random public identifier of length n.
func GenerateRandomID(n int) string {
	limit := big.NewInt(int64(len(idAlphabet)))

	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand failure leaves no safe fallback
			return ""
		}
		b[i] = idAlphabet[num.Int64()]
	}
	return string(b)
}
