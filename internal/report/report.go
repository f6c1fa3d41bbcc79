// Package report renders a cached transcript and its question history
// into a docx document.
package report

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/dangtuanvu/vidask/internal/cache"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// Write renders the record and its Q&A history to a docx file at
// outputPath.
func Write(videoID string, rec *cache.TranscriptRecord, history []cache.QAEntry, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	title := rec.Title
	if title == "" {
		title = videoID
	}
	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	if len(rec.SummarizedChunks) > 0 {
		addStyledRun(doc.AddParagraph(""), "Summary", true, 15)
		for _, chunk := range rec.SummarizedChunks {
			addStyledRun(doc.AddParagraph(""), chunk, false, fontSize)
		}
		doc.AddParagraph("")
	}

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 15)
	for _, para := range transcriptParagraphs(rec.Transcript) {
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	if len(history) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Questions & Answers", true, 15)
		for _, qa := range history {
			addStyledRun(doc.AddParagraph(""), "Q: "+qa.Question, true, fontSize)
			addStyledRun(doc.AddParagraph(""), "A: "+qa.Answer, false, fontSize)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// transcriptParagraphs breaks a merged transcript into readable blocks of
// a few sentences each.
const sentencesPerParagraph = 5

func transcriptParagraphs(transcript string) []string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil
	}

	sentences := strings.SplitAfter(transcript, ". ")
	var paragraphs []string
	for i := 0; i < len(sentences); i += sentencesPerParagraph {
		end := i + sentencesPerParagraph
		if end > len(sentences) {
			end = len(sentences)
		}
		para := strings.TrimSpace(strings.Join(sentences[i:end], ""))
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
