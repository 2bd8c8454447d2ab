package report

import (
	"regexp"
	"strings"
)

// Section is one titled block of a parsed report: optional column headers
// and zero or more data rows. Rows are kept exactly as tokenized; they are
// normalized to the fixed four-column shape at the table layout boundary.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Parsed is the structured form of a report's raw result text.
type Parsed struct {
	Sections       []Section
	DoctorComments string
}

var (
	doctorMarker = regexp.MustCompile(`(?i)doctor['’]s comments`)
	titleCased   = regexp.MustCompile(`^[A-Z][A-Za-z\s]+$`)
	titleSuffix  = regexp.MustCompile(`(?i)(Test|Analysis)$`)
)

var headerKeywords = []string{"test", "parameter"}

// isSectionTitle reports whether a line opens a new section. A line that
// splits into multiple cells is table content, never a title, even when it
// is entirely title-cased words (header rows like "Test  Value  Reference
// Remarks" would otherwise be swallowed as titles).
func isSectionTitle(line string) bool {
	if len(splitRuns(line)) > 1 {
		return false
	}
	return titleCased.MatchString(line) || titleSuffix.MatchString(line)
}

func hasHeaderKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range headerKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Segment parses raw report text into titled sections with tabular rows and
// an optional trailing doctor-comments block. It is a single forward pass
// over the non-empty trimmed lines and never fails: malformed input degrades
// to a single "General" section or to no sections at all. Blank input yields
// nil.
func Segment(raw string) *Parsed {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r", ""))
	if text == "" {
		return nil
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	parsed := &Parsed{}
	effective := lines
	for i, l := range lines {
		if doctorMarker.MatchString(l) {
			parsed.DoctorComments = strings.Join(lines[i+1:], " ")
			effective = lines[:i]
			break
		}
	}

	labels := DefaultColumns().Labels
	var current *Section
	for _, line := range effective {
		if isSectionTitle(line) {
			if current != nil {
				parsed.Sections = append(parsed.Sections, *current)
			}
			current = &Section{Title: line}
			continue
		}
		if current == nil {
			current = &Section{Title: "General"}
		}
		if len(current.Headers) == 0 && hasHeaderKeyword(line) {
			current.Headers = TokenizeCells(line)
			continue
		}
		cells := TokenizeCells(line)
		if len(cells) > 1 {
			if len(current.Headers) == 0 {
				n := len(cells)
				if n > len(labels) {
					n = len(labels)
				}
				current.Headers = append([]string(nil), labels[:n]...)
			}
			current.Rows = append(current.Rows, cells)
			continue
		}
		// Stray single-token line: continuation of the previous row's
		// remarks, or noise when no row exists yet.
		if n := len(current.Rows); n > 0 {
			last := current.Rows[n-1]
			last[len(last)-1] += " " + line
		}
	}
	if current != nil {
		parsed.Sections = append(parsed.Sections, *current)
	}
	return parsed
}
