package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"glosscast/internal/logging"
)

// Episode is one feed item in source order.
type Episode struct {
	// Number is the 1-based position in the feed (newest first).
	Number      int
	Title       string
	Link        string
	PubDateRaw  string
	Published   time.Time // zero when PubDateRaw could not be parsed
	Description string    // raw markup from <description> or itunes:summary
	Content     string    // raw markup from content:encoded, if present
	AudioURL    string
	DurationRaw string
	ImageURL    string
}

// Transcript returns the markup the annotation pipeline should process:
// the full content block when present, the description otherwise.
func (e Episode) Transcript() string {
	if strings.TrimSpace(e.Content) != "" {
		return e.Content
	}
	return e.Description
}

// Client fetches the configured RSS feed.
type Client struct {
	url        string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a feed client. timeout bounds the whole fetch.
func NewClient(url, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "feed"),
	}
}

// Fetch downloads and parses the feed, returning episodes in feed order.
func (c *Client) Fetch(ctx context.Context) ([]Episode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	// Some feed hosts (DW included) reject requests without a browser-like
	// User-Agent with 403.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: http %d from %s", resp.StatusCode, c.url)
	}

	episodes, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched feed", logging.Args(logging.Int("episodes", len(episodes)), logging.String("url", c.url))...)
	return episodes, nil
}

// Parse reads RSS XML and extracts episodes. Feeds without items are an
// error; individual items missing optional fields are not.
func Parse(r io.Reader) ([]Episode, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed xml: %w", err)
	}

	items := xmlquery.Find(doc, "//item")
	if len(items) == 0 {
		return nil, errors.New("no episodes found in feed")
	}

	episodes := make([]Episode, 0, len(items))
	for i, item := range items {
		episode := Episode{
			Number:      i + 1,
			Title:       childText(item, "title"),
			Link:        childText(item, "link"),
			PubDateRaw:  childText(item, "pubDate"),
			Description: childText(item, "description"),
			DurationRaw: localNameText(item, "duration"),
			Content:     localNameText(item, "encoded"),
		}
		if episode.Title == "" {
			episode.Title = "Untitled"
		}
		if episode.Description == "" {
			episode.Description = localNameText(item, "summary")
		}
		if enclosure := xmlquery.FindOne(item, "enclosure"); enclosure != nil {
			episode.AudioURL = enclosure.SelectAttr("url")
		}
		if image := xmlquery.FindOne(item, "*[local-name()='image']"); image != nil {
			episode.ImageURL = image.SelectAttr("href")
		}
		episode.Published = parsePubDate(episode.PubDateRaw)
		episodes = append(episodes, episode)
	}
	return episodes, nil
}

func childText(item *xmlquery.Node, name string) string {
	node := xmlquery.FindOne(item, name)
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

// localNameText matches namespaced extension tags (itunes:duration,
// content:encoded) regardless of the feed's prefix declarations.
func localNameText(item *xmlquery.Node, local string) string {
	node := xmlquery.FindOne(item, fmt.Sprintf("*[local-name()='%s']", local))
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
