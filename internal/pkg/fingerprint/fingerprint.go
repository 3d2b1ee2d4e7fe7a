// Package fingerprint derives the content-addressed dedup key for postings.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// New returns the hex SHA-256 digest of url + "|" + title.
//
// No whitespace, case, or tracking-parameter normalization is applied: two
// postings reachable via slightly different URLs are intentionally distinct.
func New(url, title string) string {
	h := sha256.Sum256([]byte(url + "|" + title))
	return hex.EncodeToString(h[:])
}
