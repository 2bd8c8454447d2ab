package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfBackend draws onto an A4 fpdf document in point units. fpdf's y axis
// grows downward from the page top, so coordinates are flipped on the way in.
type pdfBackend struct {
	doc   *fpdf.Fpdf
	pageH float64
}

func newPDFBackend() *pdfBackend {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetMargins(0, 0, 0)
	// Pin the document dates so identical input yields identical bytes.
	// Catalog sorting does the same for object ordering, which otherwise
	// follows map iteration order.
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetModificationDate(time.Unix(0, 0).UTC())
	_, pageH := doc.GetPageSize()
	return &pdfBackend{doc: doc, pageH: pageH}
}

// Measure reports the Helvetica string width at size. Widths are always
// taken from the regular face, matching the face used for body text.
func (b *pdfBackend) Measure(text string, size float64) float64 {
	b.doc.SetFont("Helvetica", "", size)
	return b.doc.GetStringWidth(text)
}

func (b *pdfBackend) AddPage() {
	b.doc.AddPage()
}

func (b *pdfBackend) Text(x, y float64, text string, size float64, bold bool, c Color) {
	style := ""
	if bold {
		style = "B"
	}
	b.doc.SetFont("Helvetica", style, size)
	b.doc.SetTextColor(int(c.R*255), int(c.G*255), int(c.B*255))
	b.doc.Text(x, b.pageH-y, text)
}

func (b *pdfBackend) Line(x1, y1, x2, y2 float64, c Color) {
	b.doc.SetDrawColor(int(c.R*255), int(c.G*255), int(c.B*255))
	b.doc.SetLineWidth(0.5)
	b.doc.Line(x1, b.pageH-y1, x2, b.pageH-y2)
}

func (b *pdfBackend) Output() ([]byte, error) {
	if err := b.doc.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := b.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}
