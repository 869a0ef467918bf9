// Package random provides random token generation.
package random

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenHex generates a hex-encoded random token of n bytes.
func TokenHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
