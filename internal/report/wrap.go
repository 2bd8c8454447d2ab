package report

import "strings"

// Wrap splits text into greedy word-wrapped lines measuring no more than
// maxWidth points at the given size. A single word wider than maxWidth is
// still emitted alone on its own line; there is no mid-word hyphenation.
// Empty input yields no lines.
func Wrap(text string, m Metrics, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, w := range words {
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if m.Measure(candidate, size) > maxWidth {
			if current != "" {
				lines = append(lines, current)
			}
			current = w
		} else {
			current = candidate
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
