package structured

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultTagline closes every generated dialog.
const DefaultTagline = "That's all for today. Join us next time for another exciting summary."

var taglinePattern = regexp.MustCompile(`(?is)that['’]s all for today.*$`)

// TaglineSalvage repairs a dialog that ran past (or was cut off after) its
// closing phrase by replacing everything from the phrase on with the
// canonical tagline and closing the object.
type TaglineSalvage struct {
	Tagline string
}

func (s TaglineSalvage) Name() string {
	return "tagline-salvage"
}

func (s TaglineSalvage) Repair(text string) (string, error) {
	if !taglinePattern.MatchString(text) {
		return "", errors.New("closing tagline not found")
	}
	tagline := s.Tagline
	if tagline == "" {
		tagline = DefaultTagline
	}
	return taglinePattern.ReplaceAllLiteralString(text, tagline+`"}`), nil
}

// TruncationFallback closes an object that was cut off mid-value, keeping
// the text up to the last complete sentence.
type TruncationFallback struct{}

func (TruncationFallback) Name() string {
	return "truncation-fallback"
}

func (TruncationFallback) Repair(text string) (string, error) {
	trimmed := strings.TrimRightFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\r' || r == '\t'
	})
	if strings.HasSuffix(trimmed, "}") {
		return text, nil
	}

	end := strings.LastIndexAny(trimmed, ".!?")
	if end < 0 {
		return "", errors.New("no complete sentence to keep")
	}
	return trimmed[:end+1] + `"}`, nil
}

// Chain tries each strategy in turn and returns the first repair that
// succeeds.
type Chain []Repairer

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name()
	}
	return strings.Join(names, ",")
}

func (c Chain) Repair(text string) (string, error) {
	var errs []error
	for _, r := range c {
		repaired, err := r.Repair(text)
		if err == nil {
			return repaired, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
	}
	return "", errors.Join(errs...)
}

// RepairerByName resolves a comma separated list of strategy names. An
// empty name means no repair.
func RepairerByName(name string) (Repairer, error) {
	var chain Chain
	for _, n := range strings.Split(name, ",") {
		switch strings.TrimSpace(n) {
		case "":
		case "tagline-salvage":
			chain = append(chain, TaglineSalvage{})
		case "truncation-fallback":
			chain = append(chain, TruncationFallback{})
		default:
			return nil, fmt.Errorf("unknown repair strategy %q", n)
		}
	}

	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return chain[0], nil
	default:
		return chain, nil
	}
}
