package content

import (
	"iter"
	"strconv"
	"strings"
)

// SplitLines splits content into lines on "\r\n", "\r" or "\n".
// Terminators are not kept. A terminator at the very end of content does NOT
// produce a trailing empty line, and empty content has no lines at all.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, content[start:i])
			if i+1 < len(content) && content[i+1] == '\n' {
				i++ // Skip the \n
			}
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// JoinLines renders lines back into file content, terminating every line
// (including the last) with newline.
func JoinLines(lines []string, newline string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString(newline)
	}
	return sb.String()
}

// NumberedView yields "N text" for each line with N starting at 1.
// Each range over the returned sequence starts again from line 1.
func NumberedView(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, line := range lines {
			if !yield(strconv.Itoa(i+1) + " " + line) {
				return
			}
		}
	}
}
