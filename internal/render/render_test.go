package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"glosscast/internal/annotate"
	"glosscast/internal/feed"
	"glosscast/internal/logging"
	"glosscast/internal/pipeline"
)

func fixedClock() Option {
	return WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 12, 30, 0, 0, time.UTC)
	})
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Episodes: []pipeline.AnnotatedEpisode{
			{
				Episode: feed.Episode{
					Number:      1,
					Title:       "Kaffeekultur",
					Link:        "https://example.com/1",
					AudioURL:    "https://example.com/1.mp3",
					DurationRaw: "00:23:41",
					Published:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
					Description: "Ein Besuch im Kaffeehaus.",
				},
				Scope: "ep01",
				AnnotatedHTML: `<p>Der <span class="difficult-word" data-word-id="ep01:1">Stammgast</span> kommt täglich.</p>`,
				Words: annotate.WordMap{
					"ep01:1": {Word: "Stammgast", Grammar: "Nomen, maskulin", Translation: "regular customer"},
				},
			},
		},
		Words: annotate.WordMap{
			"ep01:1": {Word: "Stammgast", Grammar: "Nomen, maskulin", Translation: "regular customer"},
		},
	}
}

func TestRenderPage(t *testing.T) {
	r, err := New(logging.NewNop(), fixedClock())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	page, err := r.BuildPage(sampleResult(), "Subtitled Podcasts", "https://rss.example.com/feed")
	if err != nil {
		t.Fatalf("BuildPage returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`<html lang="de">`,
		"Episode 1",
		"Kaffeekultur",
		"15. Januar 2024",
		"23:41",
		`data-word-id="ep01:1">Stammgast</span>`,
		`"ep01:1":{"word":"Stammgast"`,
		"Glossar",
		"regular customer",
		"https://rss.example.com/feed",
		"15.01.2024 12:30:00 UTC",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderTranscriptNotEscaped(t *testing.T) {
	r, err := New(logging.NewNop(), fixedClock())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	page, err := r.BuildPage(sampleResult(), "Titel", "https://rss.example.com/feed")
	if err != nil {
		t.Fatalf("BuildPage returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, page); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(buf.String(), "&lt;span") {
		t.Error("annotated transcript was HTML-escaped")
	}
}

func TestBuildGlossarySortsGermanAndDeduplicates(t *testing.T) {
	words := annotate.WordMap{
		"ep01:1": {Word: "Zug", Grammar: "Nomen", Translation: "train"},
		"ep01:2": {Word: "Äpfel", Grammar: "Nomen", Translation: "apples"},
		"ep01:3": {Word: "Abend", Grammar: "Nomen", Translation: "evening"},
		"ep02:1": {Word: "Zug", Grammar: "Nomen", Translation: "train"},
	}
	entries := buildGlossary(words)
	if len(entries) != 3 {
		t.Fatalf("expected 3 unique entries, got %d: %v", len(entries), entries)
	}
	got := []string{entries[0].Word, entries[1].Word, entries[2].Word}
	want := []string{"Abend", "Äpfel", "Zug"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("glossary order = %v, want %v", got, want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	r, err := New(logging.NewNop(), fixedClock())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	page, err := r.BuildPage(sampleResult(), "Titel", "https://rss.example.com/feed")
	if err != nil {
		t.Fatalf("BuildPage returned error: %v", err)
	}
	if err := r.WriteFile(path, page); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Kaffeekultur") {
		t.Error("written page missing episode title")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}

	// Overwriting an existing page must succeed.
	if err := r.WriteFile(path, page); err != nil {
		t.Fatalf("second WriteFile returned error: %v", err)
	}
}
