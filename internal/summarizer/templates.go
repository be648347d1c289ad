package summarizer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

//go:embed prompts.toml
var defaultPrompts string

// Templates is the immutable set of prompts used by the summarizer.
type Templates struct {
	Tagline string

	summarizeSnippet     *template.Template
	summarizeSummaries   *template.Template
	removeSponsors       *template.Template
	rewriteAsDialog      *template.Template
	dialogFirstLine      *template.Template
	summarizeDescription *template.Template
}

type templateFile struct {
	Tagline              string `toml:"tagline"`
	DialogFirstLine      string `toml:"dialog_first_line"`
	SummarizeSnippet     string `toml:"summarize_snippet"`
	SummarizeSummaries   string `toml:"summarize_summaries"`
	RemoveSponsors       string `toml:"remove_sponsors"`
	RewriteAsDialog      string `toml:"rewrite_as_dialog"`
	SummarizeDescription string `toml:"summarize_description"`
}

// promptData is the value every template is executed with.
type promptData struct {
	Podcast     string
	Episode     string
	Snippet     string
	Summaries   string
	Summary     string
	Description string
	Tagline     string
}

// DefaultTemplates returns the built-in prompts.
func DefaultTemplates() (Templates, error) {
	return ParseTemplates(defaultPrompts)
}

// LoadTemplates reads prompts from a TOML file. Templates missing from the
// file fall back to the built-in ones. An empty path means the defaults.
func LoadTemplates(path string) (Templates, error) {
	if path == "" {
		return DefaultTemplates()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("read templates: %w", err)
	}
	return parseTemplates(defaultPrompts, string(data))
}

// ParseTemplates parses a TOML document holding every prompt.
func ParseTemplates(data string) (Templates, error) {
	return parseTemplates(data)
}

func parseTemplates(docs ...string) (Templates, error) {
	var file templateFile
	for _, doc := range docs {
		if _, err := toml.Decode(doc, &file); err != nil {
			return Templates{}, fmt.Errorf("decode templates: %w", err)
		}
	}

	if strings.TrimSpace(file.Tagline) == "" {
		return Templates{}, fmt.Errorf("template %q is empty", "tagline")
	}

	t := Templates{Tagline: file.Tagline}
	for _, p := range []struct {
		name string
		text string
		dst  **template.Template
	}{
		{"dialog_first_line", file.DialogFirstLine, &t.dialogFirstLine},
		{"summarize_snippet", file.SummarizeSnippet, &t.summarizeSnippet},
		{"summarize_summaries", file.SummarizeSummaries, &t.summarizeSummaries},
		{"remove_sponsors", file.RemoveSponsors, &t.removeSponsors},
		{"rewrite_as_dialog", file.RewriteAsDialog, &t.rewriteAsDialog},
		{"summarize_description", file.SummarizeDescription, &t.summarizeDescription},
	} {
		if strings.TrimSpace(p.text) == "" {
			return Templates{}, fmt.Errorf("template %q is empty", p.name)
		}
		tmpl, err := template.New(p.name).Option("missingkey=error").Parse(p.text)
		if err != nil {
			return Templates{}, fmt.Errorf("parse template %q: %w", p.name, err)
		}
		*p.dst = tmpl
	}
	return t, nil
}

func (t Templates) render(tmpl *template.Template, data promptData) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("templates not loaded")
	}
	data.Tagline = t.Tagline

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}
