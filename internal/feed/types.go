package feed

import (
	"fmt"
	"strings"
	"time"
)

// Podcast is a parsed RSS feed.
type Podcast struct {
	Title    string
	Episodes []Episode
}

// Episode is one feed item. Title and Description are plain ASCII text.
type Episode struct {
	Title       string
	Description string
	AudioURL    string
	Published   time.Time
}

// Find returns the episode whose title contains title, ignoring case. An
// empty title selects the newest episode.
func (p Podcast) Find(title string) (Episode, bool) {
	if len(p.Episodes) == 0 {
		return Episode{}, false
	}
	if title == "" {
		return p.Episodes[0], true
	}
	needle := strings.ToLower(title)
	for _, e := range p.Episodes {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			return e, true
		}
	}
	return Episode{}, false
}

// ParseError means the feed was fetched but could not be read as RSS.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse feed %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
