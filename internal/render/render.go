package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"glosscast/internal/annotate"
	"glosscast/internal/logging"
	"glosscast/internal/pipeline"
)

//go:embed page.tmpl
var templateFS embed.FS

// EpisodeView is one episode card plus its annotated transcript.
type EpisodeView struct {
	Number      int
	Title       string
	Date        string
	Description string
	Link        string
	AudioURL    string
	Duration    string
	Transcript  template.HTML
}

// GlossaryEntry is one row of the alphabetical word index.
type GlossaryEntry struct {
	Word        string
	Grammar     string
	Translation string
}

// Page is everything the template needs.
type Page struct {
	Title       string
	FeedURL     string
	Episodes    []EpisodeView
	Glossary    []GlossaryEntry
	WordsJSON   template.JS
	LastUpdated string
}

// Renderer turns pipeline output into the HTML page.
type Renderer struct {
	tmpl   *template.Template
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Renderer)

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

func New(logger *slog.Logger, opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "page.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	r := &Renderer{
		tmpl:   tmpl,
		logger: logging.NewComponentLogger(logger, "render"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BuildPage assembles template data from a pipeline result.
func (r *Renderer) BuildPage(result *pipeline.Result, title, feedURL string) (Page, error) {
	page := Page{
		Title:       title,
		FeedURL:     feedURL,
		Episodes:    make([]EpisodeView, 0, len(result.Episodes)),
		Glossary:    buildGlossary(result.Words),
		LastUpdated: r.now().UTC().Format("02.01.2006 15:04:05 UTC"),
	}
	for _, episode := range result.Episodes {
		page.Episodes = append(page.Episodes, EpisodeView{
			Number:      episode.Number,
			Title:       episode.Title,
			Date:        episode.DisplayDate(),
			Description: episode.Summary(),
			Link:        episode.Link,
			AudioURL:    episode.AudioURL,
			Duration:    episode.DisplayDuration(),
			Transcript:  template.HTML(episode.AnnotatedHTML),
		})
	}

	wordsJSON, err := json.Marshal(result.Words)
	if err != nil {
		return Page{}, fmt.Errorf("encode word map: %w", err)
	}
	page.WordsJSON = template.JS(wordsJSON)
	return page, nil
}

// buildGlossary flattens the word map into unique entries sorted with German
// collation so umlauts land next to their base letters.
func buildGlossary(words annotate.WordMap) []GlossaryEntry {
	seen := make(map[string]GlossaryEntry)
	for _, candidate := range words {
		key := candidate.Word + "\x00" + candidate.Translation
		if _, ok := seen[key]; !ok {
			seen[key] = GlossaryEntry{
				Word:        candidate.Word,
				Grammar:     candidate.Grammar,
				Translation: candidate.Translation,
			}
		}
	}

	entries := make([]GlossaryEntry, 0, len(seen))
	for _, entry := range seen {
		entries = append(entries, entry)
	}
	coll := collate.New(language.German)
	sort.Slice(entries, func(i, j int) bool {
		if cmp := coll.CompareString(entries[i].Word, entries[j].Word); cmp != 0 {
			return cmp < 0
		}
		return entries[i].Translation < entries[j].Translation
	})
	return entries
}

// Render executes the template into w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if err := r.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WriteFile renders the page and writes it atomically: a temp file in the
// target directory, then a rename over the destination.
func (r *Renderer) WriteFile(path string, page Page) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace output: %w", err)
	}

	r.logger.Info("page written",
		logging.Args(
			logging.String("path", path),
			logging.Int("episodes", len(page.Episodes)),
			logging.Int("glossary", len(page.Glossary)),
		)...)
	return nil
}
