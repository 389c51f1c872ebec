// Package santahash implements the double SHA-256 "santa hash" used by the
// wish fulfillment proof of work.
package santahash

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// HexLen is the length of a santa hash in lowercase hex characters.
const HexLen = 64

// Sum returns SHA-256(SHA-256(UTF-8 bytes of s)) as 64 lowercase hex
// characters, most significant byte first.
func Sum(s string) string {
	first := sha256.Sum256([]byte(s))
	second := sha256.Sum256(first[:])
	return hex.EncodeToString(second[:])
}

// Value interprets a hex-encoded hash as a big-endian 256-bit unsigned
// integer for comparison against a target.
func Value(hexHash string) *big.Int {
	v, ok := new(big.Int).SetString(hexHash, 16)
	if !ok {
		return new(big.Int)
	}
	return v
}
