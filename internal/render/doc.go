// Package render produces the final learner-facing HTML page: episode cards
// with annotated transcripts, a popup word map, and a glossary index sorted
// with German collation. Output is written atomically so a crashed run never
// leaves a truncated page behind.
package render
