// Package segment splits transcript markup into an ordered sequence of
// structural and prose segments.
//
// Splitting is pure and total: malformed markup is carried through as literal
// prose, never rejected, and concatenating the segments in order reproduces
// the input byte-for-byte. Downstream annotation touches only prose segments;
// structural segments pass through untouched.
package segment

import "strings"

// Kind tags a segment as markup or annotatable text.
type Kind int

const (
	// Structural segments are markup (tags, comments) passed through verbatim.
	Structural Kind = iota
	// Prose segments are text runs that may receive annotations.
	Prose
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural"
	case Prose:
		return "prose"
	default:
		return "unknown"
	}
}

// Segment is one contiguous unit of transcript markup.
type Segment struct {
	Kind Kind
	Text string
}

// Split partitions markup into structural and prose segments. A '<' opens a
// structural segment only when it is followed by a tag-looking character
// (letter, '/', '!', '?') and a matching '>' exists; otherwise it is literal
// prose. Comments are matched to their closing '-->' so prose inside them is
// never annotated.
func Split(markup string) []Segment {
	if markup == "" {
		return nil
	}

	var segments []Segment
	var prose strings.Builder

	flushProse := func() {
		if prose.Len() > 0 {
			segments = append(segments, Segment{Kind: Prose, Text: prose.String()})
			prose.Reset()
		}
	}

	i := 0
	for i < len(markup) {
		if markup[i] != '<' {
			j := strings.IndexByte(markup[i:], '<')
			if j < 0 {
				prose.WriteString(markup[i:])
				i = len(markup)
				continue
			}
			prose.WriteString(markup[i : i+j])
			i += j
			continue
		}

		end := tagEnd(markup, i)
		if end < 0 {
			// Not a tag: the '<' is literal prose.
			prose.WriteByte('<')
			i++
			continue
		}

		flushProse()
		segments = append(segments, Segment{Kind: Structural, Text: markup[i:end]})
		i = end
	}
	flushProse()

	return segments
}

// tagEnd returns the index just past the closing '>' of the tag opening at
// markup[start], or -1 when markup[start] does not open a well-formed tag.
func tagEnd(markup string, start int) int {
	rest := markup[start:]
	if len(rest) < 2 {
		return -1
	}

	if strings.HasPrefix(rest, "<!--") {
		idx := strings.Index(rest, "-->")
		if idx < 0 {
			return -1
		}
		return start + idx + len("-->")
	}

	next := rest[1]
	tagLike := next == '/' || next == '!' || next == '?' ||
		(next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z')
	if !tagLike {
		return -1
	}

	idx := strings.IndexByte(rest, '>')
	if idx < 0 {
		return -1
	}
	return start + idx + 1
}

// Join concatenates segments in order, restoring the original markup.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}
