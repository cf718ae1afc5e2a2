// Package annotate wraps selected word occurrences in transcript prose with
// uniquely identified spans.
//
// The span mapper scans a prose segment left to right, copying every byte
// verbatim except for matched word tokens, which it wraps in a span carrying
// a data-word-id attribute. Matching is by exact surface form and occurrence
// index: the k-th occurrence of a word is wrapped only when the candidate
// list holds a k-th entry for that word. Surplus occurrences stay plain and
// surplus candidates are dropped, so a multiplicity mismatch between model
// output and source text can never corrupt the text.
//
// Identifiers are allocated per episode as "<scope>:<sequence>" and collected
// into word maps for client-side popup lookup.
package annotate
