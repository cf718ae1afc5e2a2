package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"glosscast/internal/annotate"
	"glosscast/internal/feed"
	"glosscast/internal/logging"
	"glosscast/internal/segment"
)

// WordSelector picks annotation candidates for one prose segment. A nil or
// empty result means the segment stays unannotated.
type WordSelector interface {
	Select(ctx context.Context, text, hint string) []annotate.Candidate
}

// AnnotatedEpisode is a feed episode whose transcript has been processed.
type AnnotatedEpisode struct {
	feed.Episode

	// Scope is the episode prefix used in allocated word IDs.
	Scope string
	// AnnotatedHTML is the transcript with difficult-word spans inserted.
	// Stripping the spans yields the original transcript byte for byte.
	AnnotatedHTML string
	// Words maps this episode's word IDs to their annotations.
	Words annotate.WordMap
}

// Result holds every processed episode plus the merged word map.
type Result struct {
	Episodes []AnnotatedEpisode
	Words    annotate.WordMap
}

// Pipeline drives episode annotation. Episodes are processed sequentially in
// feed order so that allocated IDs are stable across runs.
type Pipeline struct {
	selector WordSelector
	logger   *slog.Logger
}

func New(selector WordSelector, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		selector: selector,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run annotates all episodes. Episodes with an empty transcript are carried
// through unannotated rather than dropped; the page still shows their card.
func (p *Pipeline) Run(ctx context.Context, episodes []feed.Episode) (*Result, error) {
	correlationID := uuid.New().String()
	logger := p.logger.With(logging.String(logging.FieldCorrelationID, correlationID))
	logger.Info("annotation run started", logging.Args(logging.Int("episodes", len(episodes)))...)

	result := &Result{
		Episodes: make([]AnnotatedEpisode, 0, len(episodes)),
		Words:    annotate.WordMap{},
	}
	for _, episode := range episodes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("annotation run interrupted: %w", err)
		}
		annotated := p.processEpisode(ctx, episode, logger)
		annotated.Words.MergeInto(result.Words)
		result.Episodes = append(result.Episodes, annotated)
	}

	logger.Info("annotation run finished",
		logging.Args(
			logging.Int("episodes", len(result.Episodes)),
			logging.Int("annotated_words", len(result.Words)),
		)...)
	return result, nil
}

// EpisodeScope formats the ID prefix for an episode by feed position.
func EpisodeScope(number int) string {
	return fmt.Sprintf("ep%02d", number)
}

func (p *Pipeline) processEpisode(ctx context.Context, episode feed.Episode, logger *slog.Logger) AnnotatedEpisode {
	scope := EpisodeScope(episode.Number)
	annotated := AnnotatedEpisode{
		Episode: episode,
		Scope:   scope,
		Words:   annotate.WordMap{},
	}
	logger = logger.With(logging.String(logging.FieldEpisode, scope))

	transcript := episode.Transcript()
	if strings.TrimSpace(transcript) == "" {
		logger.Warn("episode has no transcript, skipping annotation",
			logging.Args(logging.String("title", episode.Title))...)
		return annotated
	}

	alloc := annotate.NewAllocator(scope)
	segments := segment.Split(transcript)
	out := make([]segment.Segment, 0, len(segments))
	for i, seg := range segments {
		if seg.Kind != segment.Prose {
			out = append(out, seg)
			continue
		}
		candidates := p.selector.Select(ctx, seg.Text, episode.Title)
		if len(candidates) == 0 {
			out = append(out, seg)
			continue
		}
		wrapped, occurrences := annotate.WrapSegment(seg.Text, candidates, alloc)
		annotated.Words.Record(occurrences)
		out = append(out, segment.Segment{Kind: seg.Kind, Text: wrapped})
		logger.Debug("segment annotated",
			logging.Args(
				logging.Int(logging.FieldSegmentIndex, i),
				logging.Int("occurrences", len(occurrences)),
			)...)
	}
	annotated.AnnotatedHTML = segment.Join(out)

	logger.Info("episode annotated",
		logging.Args(
			logging.String("title", episode.Title),
			logging.Int("words", len(annotated.Words)),
		)...)
	return annotated
}
