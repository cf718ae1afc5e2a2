package annotate

import (
	"fmt"
	"strings"
	"unicode"
)

// Candidate is one model-proposed difficult word with its metadata. The Word
// field is the exact surface form as it appears in the segment text.
type Candidate struct {
	Word        string `json:"word"`
	Grammar     string `json:"grammar"`
	Translation string `json:"translation"`
}

// Occurrence is one wrapped word occurrence with its allocated identifier.
type Occurrence struct {
	ID        string
	Candidate Candidate
}

// Allocator hands out identifiers "<scope>:<sequence>" with a monotonically
// increasing per-episode sequence starting at 1. Scopes are unique per run,
// which makes every identifier globally unique.
type Allocator struct {
	scope string
	next  int
}

// NewAllocator returns an allocator for one episode scope.
func NewAllocator(scope string) *Allocator {
	return &Allocator{scope: scope, next: 1}
}

// Next returns the next identifier in sequence.
func (a *Allocator) Next() string {
	id := fmt.Sprintf("%s:%d", a.scope, a.next)
	a.next++
	return id
}

// WrapSegment scans text left to right and wraps matched word occurrences in
// identified spans. Everything outside the wrapping markers is copied
// byte-for-byte; stripping the markers restores the input exactly.
//
// Candidates are grouped by surface form in candidate-list order. During the
// scan the k-th occurrence of a word is wrapped with the metadata of the
// group's k-th entry; occurrences beyond the group stay plain and group
// entries beyond the occurrences are silently dropped. Matching is
// case-sensitive.
func WrapSegment(text string, candidates []Candidate, alloc *Allocator) (string, []Occurrence) {
	if len(candidates) == 0 || alloc == nil {
		return text, nil
	}

	groups := make(map[string][]Candidate)
	for _, candidate := range candidates {
		if candidate.Word == "" {
			continue
		}
		groups[candidate.Word] = append(groups[candidate.Word], candidate)
	}

	var out strings.Builder
	out.Grow(len(text) + len(candidates)*64)
	var occurrences []Occurrence
	seen := make(map[string]int)

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			out.WriteRune(runes[i])
			i++
			continue
		}

		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		word := string(runes[start:i])

		k := seen[word]
		seen[word] = k + 1

		group := groups[word]
		if k >= len(group) {
			out.WriteString(word)
			continue
		}

		id := alloc.Next()
		out.WriteString(`<span class="difficult-word" data-word-id="`)
		out.WriteString(id)
		out.WriteString(`">`)
		out.WriteString(word)
		out.WriteString(`</span>`)
		occurrences = append(occurrences, Occurrence{ID: id, Candidate: group[k]})
	}

	return out.String(), occurrences
}

// WordCount returns the number of maximal word tokens in text.
func WordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if isWordRune(r) {
			if !inWord {
				count++
				inWord = true
			}
			continue
		}
		inWord = false
	}
	return count
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
