package report

import "strings"

// Page geometry, ISO A4 in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	marginX    = 40.0
	topY       = 800.0
	bottomY    = 50.0
)

// Columns is the fixed four-column table schema. Ratios are fractions of the
// usable width and sum to 1.0.
type Columns struct {
	Ratios [4]float64
	Labels [4]string
}

// DefaultColumns returns the Name/Value/Reference/Remarks schema.
func DefaultColumns() Columns {
	return Columns{
		Ratios: [4]float64{0.30, 0.18, 0.20, 0.32},
		Labels: [4]string{"Name", "Value", "Reference", "Remarks"},
	}
}

// cursor is the render position: the current page (1-based) and the baseline
// y measured upward from the page bottom. It is threaded by value through
// the layout functions so each draw step is a plain cursor -> cursor map.
type cursor struct {
	page int
	y    float64
}

// newPage appends a page and resets the cursor to the top margin.
func newPage(b Backend, cur cursor) cursor {
	b.AddPage()
	return cursor{page: cur.page + 1, y: topY}
}

// NormalizeRow converts a tokenized row into the fixed four-cell shape:
// short rows are right-padded with empty cells, and on long rows every token
// from the fourth onward is space-joined into the remarks cell so no data is
// dropped. Cells are sanitized here, before any width measurement.
func NormalizeRow(cells []string) [4]string {
	var row [4]string
	if len(cells) > 4 {
		copy(row[:3], cells[:3])
		row[3] = strings.Join(cells[3:], " ")
	} else {
		copy(row[:], cells)
	}
	for i := range row {
		row[i] = Sanitize(row[i])
	}
	return row
}

const (
	tableHeaderSize = 10.0
	tableCellSize   = 10.0
	tableLineGap    = 3.0
	tableRowPad     = 4.0
)

var ruleColor = Color{R: 0.7, G: 0.7, B: 0.7}

// wrapCell wraps one cell's text to the column width, always returning at
// least one line so empty cells still occupy row height.
func wrapCell(text string, m Metrics, width float64) []string {
	if text == "" {
		return []string{""}
	}
	// small inner padding
	return Wrap(text, m, tableCellSize, width-2)
}

// drawTable renders rows under the four-column schema starting at cur and
// returns the cursor below the table. A bold header row with an underline
// rule is drawn first and repeated at the top of every page the table spans.
// Before each data row the remaining vertical space is checked against the
// row's wrapped height, so no content is ever drawn below the bottom margin.
func drawTable(b Backend, cur cursor, rows [][]string, cols Columns) cursor {
	usable := pageWidth - 2*marginX
	var widths [4]float64
	for i, r := range cols.Ratios {
		widths[i] = r * usable
	}

	header := func(cur cursor) cursor {
		if cur.y-(tableHeaderSize+8) < bottomY {
			cur = newPage(b, cur)
		}
		x := marginX
		for i, label := range cols.Labels {
			b.Text(x+1, cur.y, label, tableHeaderSize, true, Black)
			x += widths[i]
		}
		cur.y -= tableHeaderSize + 4
		b.Line(marginX, cur.y+2, marginX+usable, cur.y+2, ruleColor)
		return cur
	}

	cur = header(cur)
	for _, raw := range rows {
		row := NormalizeRow(raw)

		var cells [4][]string
		height := 1
		for i, cell := range row {
			cells[i] = wrapCell(cell, b, widths[i])
			if len(cells[i]) > height {
				height = len(cells[i])
			}
		}
		rowHeight := float64(height)*(tableCellSize+tableLineGap) - tableLineGap + tableRowPad
		if cur.y-rowHeight < bottomY {
			cur = newPage(b, cur)
			cur = header(cur)
		}

		for li := 0; li < height; li++ {
			x := marginX
			for col := range cells {
				if li < len(cells[col]) {
					b.Text(x+1, cur.y, cells[col][li], tableCellSize, false, Black)
				}
				x += widths[col]
			}
			cur.y -= tableCellSize + tableLineGap
		}
		cur.y -= 2
	}
	return cur
}
