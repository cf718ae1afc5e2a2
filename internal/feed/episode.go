package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// descriptionLimit caps the rendered episode description length.
const descriptionLimit = 300

var germanMonths = [...]string{
	"", "Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// DisplayDate renders the publication date as a German long date
// ("15. Januar 2024"). Unparseable dates fall back to the raw feed value,
// missing ones to "Datum unbekannt".
func (e Episode) DisplayDate() string {
	if e.Published.IsZero() {
		if e.PubDateRaw != "" {
			return e.PubDateRaw
		}
		return "Datum unbekannt"
	}
	return fmt.Sprintf("%d. %s %d", e.Published.Day(), germanMonths[e.Published.Month()], e.Published.Year())
}

// Summary returns the description with markup stripped and truncated for the
// episode card.
func (e Episode) Summary() string {
	clean := StripTags(e.Description)
	if clean == "" {
		return "Keine Beschreibung verfügbar."
	}
	runes := []rune(clean)
	if len(runes) > descriptionLimit {
		return string(runes[:descriptionLimit-3]) + "..."
	}
	return clean
}

// DisplayDuration normalizes the itunes:duration value: HH:MM:SS drops a
// zero hour part, MM:SS passes through, a bare number is read as seconds.
// Anything unrecognized is returned as-is; empty stays empty.
func (e Episode) DisplayDuration() string {
	raw := strings.TrimSpace(e.DurationRaw)
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		switch len(parts) {
		case 3:
			hours, errH := strconv.Atoi(parts[0])
			minutes, errM := strconv.Atoi(parts[1])
			seconds, errS := strconv.Atoi(parts[2])
			if errH != nil || errM != nil || errS != nil {
				return raw
			}
			if hours > 0 {
				return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
			}
			return fmt.Sprintf("%d:%02d", minutes, seconds)
		case 2:
			return raw
		default:
			return raw
		}
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup tags and trims the result.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
