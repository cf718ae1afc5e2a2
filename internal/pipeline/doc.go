// Package pipeline runs the annotation stages over fetched episodes: split
// each transcript into segments, select difficult words per prose segment,
// wrap occurrences in annotated spans, and merge the per-episode word maps
// into one global map for the rendered page.
package pipeline
