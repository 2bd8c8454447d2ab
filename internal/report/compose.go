package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report is the record the composer renders: the stored test report fields
// plus the display names resolved from its service order. Immutable input.
type Report struct {
	ID           int64
	OrderID      int64
	PatientName  string
	ServiceName  string
	ReportDate   time.Time
	ActualResult string
	Findings     string
	Comments     string
	AISummary    string
	AIProvider   string
}

const (
	bodySize    = 10.0
	subheadSize = 11.0
	sectionSize = 12.0
	titleSize   = 18.0
)

var (
	titleColor   = Color{R: 0, G: 0.2, B: 0.6}
	sectionColor = Color{R: 0, G: 0.25, B: 0.55}
	subheadColor = Color{R: 0.15, G: 0.15, B: 0.5}
)

// Composer typesets one Report onto a Backend. Instances are single-use:
// each render request gets a fresh composer with its own cursor, so
// concurrent renders need no coordination.
type Composer struct {
	b Backend
}

// NewComposer creates a composer drawing on b.
func NewComposer(b Backend) *Composer {
	return &Composer{b: b}
}

// ComposePDF renders r into a finished PDF document.
func ComposePDF(r Report) ([]byte, error) {
	return NewComposer(newPDFBackend()).Compose(r)
}

// Compose lays out the document: title, metadata fields, the structured (or
// free-text) result body, and the remaining narrative sections. The caller
// receives either a complete document or an error, never partial bytes; any
// panic out of the layout code is converted into the returned error.
func (c *Composer) Compose(r Report) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("compose report %d: %v", r.ID, rec)
		}
	}()

	cur := newPage(c.b, cursor{})
	c.b.Text(marginX, cur.y, "Medical Service Report", titleSize, false, titleColor)
	cur.y -= 32

	cur = c.heading(cur, "Meta")
	cur = c.labeled(cur, "Report ID", strconv.FormatInt(r.ID, 10))
	if r.OrderID != 0 {
		cur = c.labeled(cur, "Order ID", strconv.FormatInt(r.OrderID, 10))
	}
	cur = c.labeled(cur, "Patient", r.PatientName)
	cur = c.labeled(cur, "Service", r.ServiceName)
	cur = c.labeled(cur, "Report Date", r.ReportDate.UTC().Format(time.RFC3339))
	cur = c.labeled(cur, "AI Provider", r.AIProvider)

	if r.ActualResult != "" {
		cur = c.heading(cur, "Actual Result")
		parsed := Segment(r.ActualResult)
		if parsed != nil && len(parsed.Sections) > 0 {
			cols := DefaultColumns()
			for _, sec := range parsed.Sections {
				cur = c.line(cur, Sanitize(sec.Title), subheadSize, subheadColor)
				cur.y -= 2
				if len(sec.Rows) > 0 {
					cur = drawTable(c.b, cur, sec.Rows, cols)
					cur.y -= 6
				}
			}
			if parsed.DoctorComments != "" {
				cur = c.line(cur, "Doctor's Comments", subheadSize, subheadColor)
				body := Wrap(Sanitize(parsed.DoctorComments), c.b, bodySize, pageWidth-2*marginX)
				for _, l := range body {
					cur = c.line(cur, l, bodySize, Black)
				}
			}
		} else {
			cur = c.labeled(cur, "Actual Result", r.ActualResult)
		}
	}

	cur = c.paragraphSection(cur, "Findings", r.Findings)
	cur = c.paragraphSection(cur, "Comments", r.Comments)
	c.paragraphSection(cur, "AI Summary", r.AISummary)

	return c.b.Output()
}

// line draws one sanitized line at the left margin, breaking to a new page
// first when the cursor has crossed the bottom margin.
func (c *Composer) line(cur cursor, text string, size float64, col Color) cursor {
	if cur.y < bottomY {
		cur = newPage(c.b, cur)
	}
	c.b.Text(marginX, cur.y, Sanitize(text), size, false, col)
	cur.y -= size + 4
	return cur
}

func (c *Composer) heading(cur cursor, title string) cursor {
	cur.y -= 4
	cur = c.line(cur, title, sectionSize, sectionColor)
	cur.y -= 2
	return cur
}

// labeled draws "Label: value" as a wrapped paragraph. Empty values draw
// nothing at all, so skipped fields leave no blank lines. Continuation lines
// are indented with a space run the width of the label.
func (c *Composer) labeled(cur cursor, label, value string) cursor {
	if value == "" {
		return cur
	}
	labelTxt := Sanitize(label) + ": "
	bodyWidth := pageWidth - 2*marginX - c.b.Measure(labelTxt, bodySize)
	lines := Wrap(Sanitize(value), c.b, bodySize, bodyWidth)
	if len(lines) == 0 {
		return cur
	}
	cur = c.line(cur, labelTxt+lines[0], bodySize, Black)
	pad := strings.Repeat(" ", len(labelTxt))
	for _, l := range lines[1:] {
		cur = c.line(cur, pad+l, bodySize, Black)
	}
	return cur
}

// paragraphSection draws a section heading plus a labeled paragraph, or
// nothing when the value is empty.
func (c *Composer) paragraphSection(cur cursor, label, value string) cursor {
	if value == "" {
		return cur
	}
	cur = c.heading(cur, label)
	return c.labeled(cur, label, value)
}
