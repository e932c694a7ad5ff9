package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// summary is a titled list of label/value lines rendered as an aligned table.
type summary struct {
	title string
	rows  [][2]string
	files []string
}

func newSummary(title string) *summary {
	return &summary{title: title}
}

func (s *summary) add(label string, format string, args ...any) {
	s.rows = append(s.rows, [2]string{label, fmt.Sprintf(format, args...)})
}

func (s *summary) file(path string) {
	s.files = append(s.files, path)
}

func (s *summary) render(w io.Writer, elapsed time.Duration) error {
	if _, err := fmt.Fprintln(w, headerStyle.Render(s.title)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range s.rows {
		fmt.Fprintf(tw, "  %s\t%s\n", labelStyle.Render(row[0]), valueStyle.Render(row[1]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, f := range s.files {
		fmt.Fprintf(w, "  %s %s\n", mutedStyle.Render("wrote"), pathStyle.Render(f))
	}
	_, err := fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  completed in %v", elapsed.Round(time.Millisecond))))
	return err
}
