package persistence

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashRespondent pseudonymises a respondent identifier with keyed BLAKE2b-256.
// Identifiers are trimmed and lower-cased first; an empty identifier stays empty.
func HashRespondent(key []byte, respondent string) string {
	normalized := strings.ToLower(strings.TrimSpace(respondent))
	if normalized == "" {
		return ""
	}

	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}

	h, err := blake2b.New256(key)
	if err != nil {
		// unreachable: key length is bounded above
		sum := blake2b.Sum256([]byte(normalized))
		return hex.EncodeToString(sum[:])
	}
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))
}
