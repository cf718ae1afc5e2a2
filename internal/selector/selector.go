package selector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"glosscast/internal/annotate"
	"glosscast/internal/llm"
	"glosscast/internal/logging"
	"glosscast/internal/retry"
	"glosscast/internal/wordcache"
)

const (
	// maxAttempts and retryDelay bound how hard one paragraph is retried
	// before it degrades to an unannotated rendering.
	maxAttempts = 3
	retryDelay  = 2 * time.Second

	// targetDivisor sets the candidate budget: one word per three words of
	// prose, with a floor of one.
	targetDivisor = 3
)

// ErrMalformedResponse indicates the model's output failed schema validation.
var ErrMalformedResponse = errors.New("malformed model response")

// CompletionClient is the model contract the selector depends on.
type CompletionClient interface {
	Enabled() bool
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Selector picks difficult words for prose segments, caching results by
// request fingerprint.
type Selector struct {
	client CompletionClient
	store  wordcache.Store
	model  string
	logger *slog.Logger
	policy retry.Policy
}

// Option customizes the selector.
type Option func(*Selector)

// WithRetryPolicy overrides the default retry policy (used by tests to avoid
// real delays).
func WithRetryPolicy(policy retry.Policy) Option {
	return func(s *Selector) {
		s.policy = policy
	}
}

// New constructs a selector. client may be nil or disabled; every Select
// call then degrades to an empty candidate list without touching the
// network. store must not be nil; use wordcache.NewMemoryStore() when no
// persistent cache is wanted.
func New(client CompletionClient, store wordcache.Store, model string, logger *slog.Logger, opts ...Option) *Selector {
	s := &Selector{
		client: client,
		store:  store,
		model:  model,
		logger: logging.NewComponentLogger(logger, "selector"),
		policy: retry.Policy{MaxAttempts: maxAttempts, Delay: retryDelay},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetCount returns the candidate budget for a segment with wordCount
// tokens: max(1, wordCount/3).
func TargetCount(wordCount int) int {
	target := wordCount / targetDivisor
	if target < 1 {
		target = 1
	}
	return target
}

// Select returns the candidate list for one prose segment. hint is the
// contextual hint (episode title). The returned list is empty, never an
// error, when annotation is disabled, the segment has no words, or the
// model could not be made to answer within the retry bound.
func (s *Selector) Select(ctx context.Context, text, hint string) []annotate.Candidate {
	wordCount := annotate.WordCount(text)
	if wordCount == 0 {
		return nil
	}
	target := TargetCount(wordCount)

	if s.client == nil || !s.client.Enabled() {
		// No credential, no call.
		return nil
	}

	fingerprint := wordcache.Fingerprint(wordcache.Payload{
		Text:          text,
		Hint:          hint,
		TargetCount:   target,
		Model:         s.model,
		PromptVersion: promptVersion,
	})
	logger := s.logger.With(logging.Args(logging.String(logging.FieldFingerprint, fingerprint))...)

	if candidates, ok := s.fromCache(ctx, fingerprint, logger); ok {
		return candidates
	}

	var candidates []annotate.Candidate
	err := retry.Do(ctx, s.policy, func(ctx context.Context) error {
		selected, queryErr := s.query(ctx, text, hint, target)
		if queryErr != nil {
			return queryErr
		}
		candidates = selected
		return nil
	})
	if err != nil {
		logger.Warn("word selection degraded to unannotated",
			logging.Args(logging.Int("word_count", wordCount), logging.Error(err))...)
		return nil
	}

	s.toCache(ctx, fingerprint, candidates, logger)
	return candidates
}

func (s *Selector) fromCache(ctx context.Context, fingerprint string, logger *slog.Logger) ([]annotate.Candidate, bool) {
	data, found, err := s.store.Get(ctx, fingerprint)
	if err != nil {
		// A failed read is a miss, not a fault.
		logger.Warn("cache read failed, treating as miss", logging.Args(logging.Error(err))...)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var candidates []annotate.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		logger.Warn("corrupt cache entry, treating as miss", logging.Args(logging.Error(err))...)
		return nil, false
	}
	logger.Debug("cache hit", logging.Args(logging.Int("candidates", len(candidates)))...)
	return candidates, true
}

func (s *Selector) toCache(ctx context.Context, fingerprint string, candidates []annotate.Candidate, logger *slog.Logger) {
	data, err := json.Marshal(candidates)
	if err != nil {
		logger.Warn("encode cache entry failed", logging.Args(logging.Error(err))...)
		return
	}
	if err := s.store.Put(ctx, fingerprint, data); err != nil {
		// The run proceeds without this entry cached.
		logger.Warn("cache write failed", logging.Args(logging.Error(err))...)
	}
}

type wordSelectionResponse struct {
	Words []annotate.Candidate `json:"words"`
}

// query performs one model call and validates the response schema: a
// non-empty list of objects each carrying word, grammar, and translation.
func (s *Selector) query(ctx context.Context, text, hint string, target int) ([]annotate.Candidate, error) {
	content, err := s.client.CompleteJSON(ctx, wordSelectionPrompt, userPrompt(text, hint, target))
	if err != nil {
		return nil, err
	}

	var parsed wordSelectionResponse
	if err := decodeResponse(content, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Words) > target {
		parsed.Words = parsed.Words[:target]
	}
	return parsed.Words, nil
}

func decodeResponse(content string, parsed *wordSelectionResponse) error {
	if err := llm.DecodeJSON(content, parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Words) == 0 {
		return fmt.Errorf("%w: empty word list", ErrMalformedResponse)
	}
	for i, candidate := range parsed.Words {
		if candidate.Word == "" || candidate.Grammar == "" || candidate.Translation == "" {
			return fmt.Errorf("%w: entry %d is missing required fields", ErrMalformedResponse, i)
		}
	}
	return nil
}
