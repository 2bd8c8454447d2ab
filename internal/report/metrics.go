package report

// Metrics measures the rendered width of text at a font size, in points.
// The font subsystem of the rendering backend supplies the production
// implementation; tests inject a deterministic fake.
type Metrics interface {
	Measure(text string, size float64) float64
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Black is the default text color.
var Black = Color{}

// Backend is the drawing surface a Composer renders to. Y coordinates grow
// upward from the page bottom, as in PDF user space; implementations convert
// as needed. Text and Line draw on the most recently added page.
type Backend interface {
	Metrics

	// AddPage appends a fresh page and makes it current.
	AddPage()

	// Text draws a single line at (x, y) with the given size, weight and color.
	Text(x, y float64, text string, size float64, bold bool, color Color)

	// Line draws a straight rule between two points.
	Line(x1, y1, x2, y2 float64, color Color)

	// Output serializes the finished document. After an internal failure it
	// must return an error rather than partial bytes.
	Output() ([]byte, error)
}
