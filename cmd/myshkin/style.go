package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	lineNumberStyle = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headerStyle     = lipgloss.NewStyle().Bold(true)
)

// printNumbered prints "N text" lines with the number dimmed.
func printNumbered(w io.Writer, lines []string) {
	for _, line := range lines {
		num, text, ok := strings.Cut(line, " ")
		if !ok {
			fmt.Fprintln(w, lineNumberStyle.Render(line))
			continue
		}
		fmt.Fprintln(w, lineNumberStyle.Render(num)+" "+text)
	}
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
