package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Summary     string `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd summary"`
	PubDate     string `xml:"pubDate"`
	Enclosure   struct {
		URL  string `xml:"url,attr"`
		Type string `xml:"type,attr"`
	} `xml:"enclosure"`
}

var dateLayouts = []string{time.RFC1123Z, time.RFC1123, "Mon, 2 Jan 2006 15:04:05 -0700", "Mon, 2 Jan 2006 15:04:05 MST"}

// Parse fetches and parses the RSS feed at url.
func Parse(ctx context.Context, url string) (Podcast, error) {
	return ParseWithClient(ctx, http.DefaultClient, url)
}

// ParseWithClient is Parse using client for the request.
func ParseWithClient(ctx context.Context, client *http.Client, url string) (Podcast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Podcast{}, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Podcast{}, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Podcast{}, fmt.Errorf("fetch feed: %s", resp.Status)
	}

	podcast, err := ParseReader(resp.Body)
	if err != nil {
		return Podcast{}, &ParseError{URL: url, Err: err}
	}
	return podcast, nil
}

// ParseReader parses an RSS document.
func ParseReader(r io.Reader) (Podcast, error) {
	var doc rssDocument
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return Podcast{}, err
	}

	title := strings.TrimSpace(doc.Channel.Title)
	if title == "" {
		return Podcast{}, fmt.Errorf("channel has no title")
	}

	podcast := Podcast{Title: title, Episodes: make([]Episode, 0, len(doc.Channel.Items))}
	for _, item := range doc.Channel.Items {
		description := item.Description
		if strings.TrimSpace(description) == "" {
			description = item.Summary
		}
		podcast.Episodes = append(podcast.Episodes, Episode{
			Title:       strings.TrimSpace(Transliterate(item.Title)),
			Description: Transliterate(StripTags(description)),
			AudioURL:    strings.TrimSpace(item.Enclosure.URL),
			Published:   parseDate(item.PubDate),
		})
	}
	return podcast, nil
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
