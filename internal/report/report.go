// Package report renders the stages of a summarized episode as a DOCX
// document.
package report

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx saves every non-empty stage of t to outputPath, final dialog
// first.
func WriteDocx(t summarizer.Transcript, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	title := t.Episode.Title
	if t.Episode.Podcast != "" {
		title = t.Episode.Podcast + ": " + title
	}
	addStyledRun(doc.AddParagraph(""), title, true, 16)

	addSection(doc, summarizer.StageFinalDialog, t.Dialog)
	addSection(doc, summarizer.StageSponsorFreeSummary, t.SponsorFree)
	addSection(doc, summarizer.StageMergedSummary, t.Merged)

	if len(t.SnippetSummaries) > 0 {
		addHeading(doc, summarizer.StageSnippetSummaries)
		for i, s := range t.SnippetSummaries {
			p := doc.AddParagraph("")
			addStyledRun(p, fmt.Sprintf("%d. ", i+1), true, fontSize)
			addStyledRun(p, s, false, fontSize)
		}
	}

	if t.Description != "" {
		addStyledRun(doc.AddParagraph(""), "Episode description", true, 14)
		addParagraphs(doc, t.Description)
	}
	addSection(doc, summarizer.StageRawTranscript, t.Raw)

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addSection(doc *docx.RootDoc, stage summarizer.Stage, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	addHeading(doc, stage)
	addParagraphs(doc, text)
}

func addHeading(doc *docx.RootDoc, stage summarizer.Stage) {
	name := stage.String()
	addStyledRun(doc.AddParagraph(""), strings.ToUpper(name[:1])+name[1:], true, 14)
}

// addParagraphs writes one paragraph per non-empty line.
func addParagraphs(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			addStyledRun(doc.AddParagraph(""), line, false, fontSize)
		}
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
