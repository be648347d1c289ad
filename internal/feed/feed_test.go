package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>The Café Hour</title>
  <item>
    <title>Crème brûlée – a history</title>
    <description><![CDATA[<p>We talk about <b>dessert</b>.</p><p>Visit&nbsp;our site!</p>]]></description>
    <pubDate>Tue, 10 Jan 2023 08:00:00 +0000</pubDate>
    <enclosure url="https://example.com/ep2.mp3" type="audio/mpeg" length="1"/>
  </item>
  <item>
    <title>Pilot</title>
    <description></description>
    <itunes:summary>Just the summary.</itunes:summary>
    <enclosure url="https://example.com/ep1.mp3" type="audio/mpeg" length="1"/>
  </item>
</channel>
</rss>`

func TestParseReader(t *testing.T) {
	podcast, err := ParseReader(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "The Café Hour", podcast.Title)
	require.Len(t, podcast.Episodes, 2)

	ep := podcast.Episodes[0]
	assert.Equal(t, "Creme brulee - a history", ep.Title)
	assert.Equal(t, "We talk about dessert. Visit our site!", ep.Description)
	assert.Equal(t, "https://example.com/ep2.mp3", ep.AudioURL)
	assert.Equal(t, time.Date(2023, 1, 10, 8, 0, 0, 0, time.UTC), ep.Published.UTC())

	assert.Equal(t, "Just the summary.", podcast.Episodes[1].Description)
	assert.True(t, podcast.Episodes[1].Published.IsZero())
}

func TestParseFetchesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(sampleFeed))
		case "/broken.xml":
			w.Write([]byte("<rss><channel><title>Oops"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	podcast, err := Parse(context.Background(), server.URL+"/feed.xml")
	require.NoError(t, err)
	assert.Len(t, podcast.Episodes, 2)

	_, err = Parse(context.Background(), server.URL+"/broken.xml")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, server.URL+"/broken.xml", parseErr.URL)

	_, err = Parse(context.Background(), server.URL+"/missing.xml")
	require.Error(t, err)
	assert.False(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "404")
}

func TestParseReaderRejectsNonRSS(t *testing.T) {
	_, err := ParseReader(strings.NewReader(`<html><body>hi</body></html>`))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	podcast, err := ParseReader(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	ep, ok := podcast.Find("")
	require.True(t, ok)
	assert.Equal(t, "Creme brulee - a history", ep.Title)

	ep, ok = podcast.Find("pilot")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/ep1.mp3", ep.AudioURL)

	_, ok = podcast.Find("nope")
	assert.False(t, ok)

	_, ok = Podcast{}.Find("")
	assert.False(t, ok)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", StripTags("<p>Tom &amp; Jerry</p>"))
	assert.Equal(t, "one two", StripTags("one<br/>two"))
	assert.Equal(t, "plain", StripTags("plain"))
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "naive cafe", Transliterate("naïve café"))
	assert.Equal(t, `"quoted" -- it's`, Transliterate("“quoted” — it’s"))
	assert.Equal(t, "Tokyo ", Transliterate("Tokyo 東京"))
}
