package selector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"glosscast/internal/retry"
	"glosscast/internal/wordcache"
)

type fakeClient struct {
	enabled   bool
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeClient) Enabled() bool { return f.enabled }

func (f *fakeClient) CompleteJSON(_ context.Context, _, user string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, user)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func noDelay() Option {
	return WithRetryPolicy(retry.Policy{MaxAttempts: maxAttempts, Sleeper: func(time.Duration) {}})
}

func validResponse(words ...string) string {
	type entry struct {
		Word        string `json:"word"`
		Grammar     string `json:"grammar"`
		Translation string `json:"translation"`
	}
	payload := struct {
		Words []entry `json:"words"`
	}{}
	for _, w := range words {
		payload.Words = append(payload.Words, entry{Word: w, Grammar: "Nomen", Translation: "x"})
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestTargetCount(t *testing.T) {
	cases := []struct{ words, want int }{
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {5, 1}, {6, 2}, {9, 3}, {10, 3},
	}
	for _, tc := range cases {
		if got := TargetCount(tc.words); got != tc.want {
			t.Fatalf("TargetCount(%d) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestSelectShortCircuitsWithoutCredential(t *testing.T) {
	client := &fakeClient{enabled: false}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell", "hint")
	if candidates != nil {
		t.Fatalf("expected nil candidates, got %v", candidates)
	}
	if client.calls != 0 {
		t.Fatalf("expected no model calls, got %d", client.calls)
	}
}

func TestSelectSkipsWordlessSegments(t *testing.T) {
	client := &fakeClient{enabled: true}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	if got := s.Select(context.Background(), "  \n\t ", "hint"); got != nil {
		t.Fatalf("expected nil candidates for wordless text, got %v", got)
	}
	if client.calls != 0 {
		t.Fatalf("expected no model calls, got %d", client.calls)
	}
}

func TestSelectReturnsValidatedCandidates(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund")}}
	store := wordcache.NewMemoryStore()
	s := New(client, store, "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell und bellt laut", "Hunde")
	if len(candidates) != 1 || candidates[0].Word != "Hund" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	if store.Len() != 1 {
		t.Fatalf("expected result cached, store has %d entries", store.Len())
	}
}

func TestSelectServesFromCacheWithoutCalling(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund")}}
	store := wordcache.NewMemoryStore()
	s := New(client, store, "demo", nil, noDelay())

	text := "Der Hund rennt schnell und bellt laut"
	first := s.Select(context.Background(), text, "Hunde")
	second := s.Select(context.Background(), text, "Hunde")

	if client.calls != 1 {
		t.Fatalf("expected exactly one model call, got %d", client.calls)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("cache replay mismatch: %+v vs %+v", first, second)
	}
}

func TestSelectDistinctHintsAreDistinctRequests(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund"), validResponse("Hund")}}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	text := "Der Hund rennt schnell und bellt laut"
	s.Select(context.Background(), text, "Folge A")
	s.Select(context.Background(), text, "Folge B")

	if client.calls != 2 {
		t.Fatalf("expected two model calls for distinct hints, got %d", client.calls)
	}
}

func TestSelectRetriesMalformedThenSucceeds(t *testing.T) {
	client := &fakeClient{
		enabled: true,
		responses: []string{
			`{"words":[]}`,
			`{"words":[{"word":"Hund","grammar":"Nomen"}]}`,
			validResponse("Hund"),
		},
	}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell und bellt laut", "")
	if client.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", client.calls)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected recovery on final attempt, got %+v", candidates)
	}
}

func TestSelectDegradesAfterExhaustedRetries(t *testing.T) {
	boom := errors.New("connection refused")
	client := &fakeClient{enabled: true, errs: []error{boom, boom, boom}}
	store := wordcache.NewMemoryStore()
	s := New(client, store, "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell", "")
	if candidates != nil {
		t.Fatalf("expected degrade to nil, got %+v", candidates)
	}
	if client.calls != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, client.calls)
	}
	if store.Len() != 0 {
		t.Fatalf("failures must not be cached, store has %d entries", store.Len())
	}
}

func TestSelectCacheReadFailureIsAMiss(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund")}}
	store := wordcache.NewMemoryStore()
	store.GetErr = errors.New("disk on fire")
	s := New(client, store, "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell und bellt laut", "")
	if len(candidates) != 1 {
		t.Fatalf("expected selection despite cache read failure, got %+v", candidates)
	}
	if client.calls != 1 {
		t.Fatalf("expected model call on cache failure, got %d", client.calls)
	}
}

func TestSelectCacheWriteFailureIsNonFatal(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund")}}
	store := wordcache.NewMemoryStore()
	store.PutErr = errors.New("read-only filesystem")
	s := New(client, store, "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell und bellt laut", "")
	if len(candidates) != 1 {
		t.Fatalf("expected selection despite cache write failure, got %+v", candidates)
	}
}

func TestSelectTruncatesSurplusCandidates(t *testing.T) {
	// 4 words -> target 1; the model returns 3 entries anyway.
	client := &fakeClient{enabled: true, responses: []string{validResponse("Der", "Hund", "rennt")}}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	candidates := s.Select(context.Background(), "Der Hund rennt schnell", "")
	if len(candidates) != 1 {
		t.Fatalf("expected truncation to target count, got %+v", candidates)
	}
	if candidates[0].Word != "Der" {
		t.Fatalf("truncation must keep list order, got %+v", candidates)
	}
}

func TestSelectPromptCarriesHintAndTarget(t *testing.T) {
	client := &fakeClient{enabled: true, responses: []string{validResponse("Hund")}}
	s := New(client, wordcache.NewMemoryStore(), "demo", nil, noDelay())

	s.Select(context.Background(), "Der Hund rennt schnell und bellt laut", "Hunde im Alltag")
	if client.calls != 1 {
		t.Fatalf("expected one call, got %d", client.calls)
	}
	prompt := client.prompts[0]
	for _, fragment := range []string{"Hunde im Alltag", fmt.Sprintf("at most %d words", 2), "Der Hund rennt schnell"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
