package report

import "errors"

// fixedMetrics gives every character a width of half the point size, which
// makes wrap boundaries easy to predict by eye.
type fixedMetrics struct{}

func (fixedMetrics) Measure(text string, size float64) float64 {
	return float64(len(text)) * size / 2
}

type drawnText struct {
	page int
	x, y float64
	text string
	size float64
	bold bool
}

// fakeBackend records draw calls so layout decisions can be asserted without
// a PDF library.
type fakeBackend struct {
	fixedMetrics
	pages     int
	texts     []drawnText
	rules     int
	outputErr error
}

func (f *fakeBackend) AddPage() { f.pages++ }

func (f *fakeBackend) Text(x, y float64, text string, size float64, bold bool, _ Color) {
	f.texts = append(f.texts, drawnText{page: f.pages, x: x, y: y, text: text, size: size, bold: bold})
}

func (f *fakeBackend) Line(_, _, _, _ float64, _ Color) { f.rules++ }

func (f *fakeBackend) Output() ([]byte, error) {
	if f.outputErr != nil {
		return nil, f.outputErr
	}
	return []byte("%PDF-fake"), nil
}

var errOutput = errors.New("font metrics unreadable")

// textsOnPage returns the drawn strings for one page, in draw order.
func (f *fakeBackend) textsOnPage(page int) []string {
	var out []string
	for _, tx := range f.texts {
		if tx.page == page {
			out = append(out, tx.text)
		}
	}
	return out
}
