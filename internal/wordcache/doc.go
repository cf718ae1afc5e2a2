// Package wordcache persists word-selection results keyed by request
// fingerprint, so a given paragraph is never sent to the model twice.
//
// # Fingerprints
//
// A fingerprint is a BLAKE3 hash of the exact request payload: the segment
// text, the contextual hint, the target word count, the model name, and the
// prompt version. Any change to the payload changes the key; identical
// payloads replay the stored candidate list deterministically.
//
// # Stores
//
// Store is a minimal byte-keyed get/put interface. SQLiteStore persists
// entries in a single-file database under the configured cache directory and
// survives across runs. MemoryStore is the injected test double.
package wordcache
