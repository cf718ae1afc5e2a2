// Package feed fetches and parses the podcast RSS feed.
//
// Parsing is namespace-tolerant: iTunes extension tags are matched by local
// name so feeds with unusual prefix declarations still yield durations and
// summaries. Episode helpers carry the presentation rules of the rendered
// page: German long dates, tag-stripped truncated descriptions, and
// normalized durations.
package feed
