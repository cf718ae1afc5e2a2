package annotate

// WordMap maps allocated identifiers to their word metadata. One map is
// built per episode in paragraph order, then merged into the run-wide map
// handed to the renderer.
type WordMap map[string]Candidate

// Record stores the occurrences' metadata under their identifiers.
func (m WordMap) Record(occurrences []Occurrence) {
	for _, occ := range occurrences {
		m[occ.ID] = occ.Candidate
	}
}

// MergeInto copies every entry of m into dst. Identifiers are globally
// unique, so collisions cannot occur between well-formed episode maps.
func (m WordMap) MergeInto(dst WordMap) {
	for id, candidate := range m {
		dst[id] = candidate
	}
}
