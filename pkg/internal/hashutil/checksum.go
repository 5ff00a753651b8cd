package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex SHA-256 of data.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
