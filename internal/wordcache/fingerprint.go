package wordcache

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// Payload is the exact selector request a fingerprint is computed over.
// Field order is fixed; the JSON encoding is the canonical byte form.
type Payload struct {
	Text          string `json:"text"`
	Hint          string `json:"hint"`
	TargetCount   int    `json:"target_count"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
}

// Fingerprint returns the hex-encoded BLAKE3 hash of the payload.
func Fingerprint(p Payload) string {
	encoded, err := json.Marshal(p)
	if err != nil {
		// Payload contains only strings and an int; Marshal cannot fail.
		panic(err)
	}
	sum := blake3.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}
