package report

import (
	"regexp"
	"strings"
)

// cellRun matches the column separators of loosely aligned report text:
// a run of two or more whitespace characters, or any run of tabs.
var cellRun = regexp.MustCompile(`\s{2,}|\t+`)

// splitRuns splits a line on whitespace runs and drops empty fragments.
func splitRuns(line string) []string {
	var parts []string
	for _, p := range cellRun.Split(line, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// TokenizeCells splits one line of report text into candidate column values.
// Columns are assumed to be separated by runs of two or more spaces or by
// tabs. When that yields a single cell the line is re-split on single
// whitespace; if that fallback produces more than four tokens, everything but
// the last three is collapsed into one leading name token so the result
// approximates "Name Value Reference Remarks". Never fails; an empty line
// yields no tokens.
func TokenizeCells(line string) []string {
	parts := splitRuns(line)
	if len(parts) > 1 {
		return parts
	}
	sp := strings.Fields(line)
	if len(sp) == 0 {
		return nil
	}
	if len(sp) > 4 {
		name := strings.Join(sp[:len(sp)-3], " ")
		return []string{name, sp[len(sp)-3], sp[len(sp)-2], sp[len(sp)-1]}
	}
	return sp
}
