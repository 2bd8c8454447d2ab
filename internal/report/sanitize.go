package report

import "strings"

// sanitizer maps characters that cannot be encoded in the WinAnsi character
// set used by the standard PDF fonts to close ASCII equivalents.
var sanitizer = strings.NewReplacer(
	"µ", "u", // micro sign
	"μ", "u", // Greek small mu
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	" ", " ", // non-breaking space
)

// Sanitize replaces unsupported punctuation and symbols with ASCII
// equivalents. It is total and idempotent, and must be applied before any
// width measurement so wrap decisions match the glyphs actually drawn.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
