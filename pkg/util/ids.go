package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// NewTicketID returns "TKT" followed by the mint time in unix millis and a
// short random suffix, so tickets minted in the same millisecond differ.
func NewTicketID(now time.Time) (string, error) {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return fmt.Sprintf("TKT%d%s", now.UnixMilli(), strings.ToUpper(hex.EncodeToString(suffix))), nil
}

// NewTxHash returns a mock transaction reference: 0x followed by the hex
// Keccak-256 digest of a random nonce and the given seed.
func NewTxHash(seed string) (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	h := sha3.NewLegacyKeccak256()
	h.Write(nonce)
	h.Write([]byte(seed))

	return "0x" + hex.EncodeToString(h.Sum(nil)), nil
}
