package chunker

import (
	"strings"
	"unicode"
)

var abbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "St.", "Jr.", "Sr.",
	"Inc.", "Ltd.", "Co.", "Corp.",
	"i.e.", "e.g.", "etc.",
	"vs.", "a.m.", "p.m.",
	"U.S.", "U.K.", "E.U.",
}

// Sentences splits text into sentences ending in '.', '!' or '?' followed by
// whitespace or the end of the text. Joining the result with single spaces
// gives back the whitespace-normalized input.
func Sentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	runes := []rune(text)
	abbreviated := abbreviationDots(runes)

	var (
		sentences []string
		current   strings.Builder
	)
	for i, r := range runes {
		current.WriteRune(r)

		if isTerminator(r) && !abbreviated[i] && (i == len(runes)-1 || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// Pages groups consecutive sentences into snippets of at most size
// sentences, joined with single spaces.
func Pages(sentences []string, size int) []string {
	if size < 1 {
		size = 1
	}

	pages := make([]string, 0, (len(sentences)+size-1)/size)
	for i := 0; i < len(sentences); i += size {
		end := min(i+size, len(sentences))
		pages = append(pages, strings.Join(sentences[i:end], " "))
	}
	return pages
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// abbreviationDots marks the dots of known abbreviations that start a
// word, so "vs." is protected but "devs." still ends a sentence.
func abbreviationDots(runes []rune) []bool {
	marked := make([]bool, len(runes))
	for _, abbr := range abbreviations {
		a := []rune(abbr)
		for i := 0; i+len(a) <= len(runes); i++ {
			if i > 0 && (unicode.IsLetter(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				continue
			}
			if !hasRunePrefix(runes[i:], a) {
				continue
			}
			for k, r := range a {
				if r == '.' {
					marked[i+k] = true
				}
			}
		}
	}
	return marked
}

func hasRunePrefix(runes, prefix []rune) bool {
	for k, r := range prefix {
		if runes[k] != r {
			return false
		}
	}
	return true
}
