// Package export renders study sets into downloadable documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/library"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

// DocxExporter renders a study set as a study guide document.
type DocxExporter struct{}

// NewDocxExporter constructs the exporter.
func NewDocxExporter() *DocxExporter {
	return &DocxExporter{}
}

// StudyGuide renders the set's summary and flashcards and returns the
// document bytes. godocx only writes to a path, so the document goes
// through a temp file.
func (e *DocxExporter) StudyGuide(set library.StudySet) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}

	addStyledRun(doc.AddParagraph(""), set.Title, true, 16)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Summary", true, 14)
	addStyledRun(doc.AddParagraph(""), set.Summary, false, fontSize)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Flashcards", true, 14)
	for i, card := range set.Flashcards {
		q := doc.AddParagraph("")
		q.AddText(fmt.Sprintf("%d. %s", i+1, card.Question)).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		addStyledRun(doc.AddParagraph(""), card.Answer, false, fontSize)
		doc.AddParagraph("")
	}

	return saveToBytes(doc)
}

var _ library.Exporter = (*DocxExporter)(nil)

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func saveToBytes(doc *docx.RootDoc) ([]byte, error) {
	path := filepath.Join(os.TempDir(), "edubot-export-"+uuid.NewString()+".docx")
	defer os.Remove(path)
	if err := doc.SaveTo(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
