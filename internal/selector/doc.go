// Package selector asks the configured language model to pick a bounded set
// of difficult words from one transcript paragraph.
//
// The selector owns the full degrade policy: results are served from the
// word cache when possible, model calls are retried a fixed number of times
// with a fixed delay, and every failure path collapses to an empty candidate
// list instead of an error. An unannotated paragraph is the worst outcome a
// selector failure can produce; a run never aborts because of one.
//
// Without an API key the selector short-circuits before any network call.
package selector
