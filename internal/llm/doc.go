// Package llm provides an OpenRouter-compatible chat client used to select
// difficult words from transcript paragraphs.
//
// The client issues a single JSON-only chat completion per call; bounded
// retry is owned by the selector, not by this package. Responses are decoded
// tolerantly: code fences and prose around the JSON payload are stripped
// before unmarshalling.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive raw JSON content.
// Client.HealthCheck: verify API key and model availability.
package llm
