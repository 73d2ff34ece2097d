package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// Renderer turns a title plus plain-text lines into a PDF document.
// Callers own the content; nothing beyond paragraphs is supported.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(title string, lines []string, footer string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	// Core fonts are cp1252; translate so em dashes and accents survive.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 15)
	doc.SetFillColor(138, 43, 226)
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(0, 10, tr(title), "", 1, "C", true, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(0, 0, 0)
	for _, line := range lines {
		doc.MultiCell(0, 7, tr(line), "", "L", false)
	}

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(128, 128, 128)
	doc.MultiCell(0, 6, tr(footer), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
