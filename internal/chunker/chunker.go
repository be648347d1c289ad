// Package chunker splits long text into bounded pieces on sentence and
// clause boundaries.
package chunker

import "strings"

// Delimiters are the clause separators Bisect splits on, most preferred
// first.
var Delimiters = []string{",", ";"}

// Words is the size measure used for chunks.
func Words(s string) int {
	return len(strings.Fields(s))
}

// MaxWords returns a predicate accepting text of at most n words.
func MaxWords(n int) func(string) bool {
	return func(s string) bool {
		return Words(s) <= n
	}
}

// Bisect splits every unit rejected by accept in two at the middle clause
// boundary, repeating over the whole sequence until a pass changes nothing.
// Units without a usable delimiter are kept as they are, however long.
func Bisect(units []string, accept func(string) bool) []string {
	out, _ := bisect(units, accept)
	return out
}

func bisect(units []string, accept func(string) bool) ([]string, int) {
	passes := 0
	for {
		passes++
		changed := false
		next := make([]string, 0, len(units))

		for _, u := range units {
			if accept(u) {
				next = append(next, u)
				continue
			}
			left, right, ok := split(u)
			if !ok {
				next = append(next, u)
				continue
			}
			next = append(next, left, right)
			changed = true
		}

		units = next
		if !changed {
			return units, passes
		}
	}
}

// split halves u on the first delimiter that yields two non-trivial
// halves. The left half keeps its trailing delimiter.
func split(u string) (string, string, bool) {
	for _, delim := range Delimiters {
		segments := strings.Split(u, delim)
		if len(segments) < 2 {
			continue
		}

		mid := (len(segments) + 1) / 2
		left := strings.TrimSpace(strings.Join(segments[:mid], delim))
		right := strings.TrimSpace(strings.Join(segments[mid:], delim))
		if len(left) <= 1 || len(right) <= 1 {
			continue
		}
		return left + delim, right, true
	}
	return "", "", false
}
