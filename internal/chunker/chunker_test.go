package chunker

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dickens = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of " +
	"incredulity, it was the season of light, it was the season of darkness, it was " +
	"the spring of hope, it was the winter of despair."

func nonSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestBisectRespectsBound(t *testing.T) {
	chunks := Bisect([]string{dickens}, MaxWords(25))

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, Words(c), 25, c)
	}
	assert.Equal(t, nonSpace(dickens), nonSpace(strings.Join(chunks, " ")))
}

func TestBisectMidpointRoundsUp(t *testing.T) {
	chunks := Bisect([]string{"one two, three four, five six"}, MaxWords(4))

	assert.Equal(t, []string{"one two, three four,", "five six"}, chunks)
}

func TestBisectKeepsAcceptedUnits(t *testing.T) {
	units := []string{"short, sentence.", "another one."}
	assert.Equal(t, units, Bisect(units, MaxWords(10)))
}

func TestBisectIrreducibleAtoms(t *testing.T) {
	tests := []struct {
		name string
		unit string
	}{
		{"single long word", strings.Repeat("a", 500)},
		{"no delimiter", "this sentence has many words but no commas at all in it"},
		{"only a trailing delimiter", "words words words words,"},
		{"degenerate split", "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bisect([]string{tt.unit}, MaxWords(1))
			assert.Equal(t, []string{tt.unit}, got)
		})
	}
}

func TestBisectFallsBackToSemicolon(t *testing.T) {
	chunks := Bisect([]string{"first part here; second part here"}, MaxWords(3))

	assert.Equal(t, []string{"first part here;", "second part here"}, chunks)
}

func TestBisectTerminates(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "word%d alpha beta gamma delta", i)
	}
	text := b.String()
	require.Equal(t, 10000, Words(text))

	chunks, passes := bisect([]string{text}, MaxWords(12))

	budget := 2*int(math.Ceil(math.Log2(float64(Words(text))))) + 2
	assert.LessOrEqual(t, passes, budget)
	for _, c := range chunks {
		assert.LessOrEqual(t, Words(c), 12)
	}
	assert.Equal(t, nonSpace(text), nonSpace(strings.Join(chunks, " ")))
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "abbreviations and terminators",
			text: "Dr. Smith went to Washington.  He met the U.S. president!\nWas it fun? Yes",
			want: []string{"Dr. Smith went to Washington.", "He met the U.S. president!", "Was it fun?", "Yes"},
		},
		{
			name: "abbreviation inside a word",
			text: "We hired more devs. They shipped it. Cats vs. dogs is old news.",
			want: []string{"We hired more devs.", "They shipped it.", "Cats vs. dogs is old news."},
		},
		{
			name: "middle dots are kept",
			text: "The Catalan word col·lecció is nice. Price · quality matters.",
			want: []string{"The Catalan word col·lecció is nice.", "Price · quality matters."},
		},
		{
			name: "abbreviation after punctuation",
			text: "Bring snacks (e.g. fruit) today. Thanks!",
			want: []string{"Bring snacks (e.g. fruit) today.", "Thanks!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.Join(strings.Fields(tt.text), " "), strings.Join(got, " "))
		})
	}
}

func TestSentencesEmpty(t *testing.T) {
	assert.Empty(t, Sentences("   \n "))
}

func TestPages(t *testing.T) {
	sentences := make([]string, 250)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Sentence %d.", i)
	}

	pages := Pages(sentences, 100)

	require.Len(t, pages, 3)
	assert.True(t, strings.HasPrefix(pages[0], "Sentence 0."))
	assert.True(t, strings.HasSuffix(pages[0], "Sentence 99."))
	assert.True(t, strings.HasPrefix(pages[2], "Sentence 200."))
	assert.Equal(t, 50, len(Sentences(pages[2])))
}
