package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/search"
)

var (
	colorEasy   = lipgloss.Color("#2ECC71")
	colorMedium = lipgloss.Color("#F4D03F")
	colorHard   = lipgloss.Color("#E74C3C")
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#7F8C8D")
)

var styles = struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Quote   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Heading: lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorEasy),
	Error:   lipgloss.NewStyle().Foreground(colorHard),
	Quote:   lipgloss.NewStyle().Italic(true).Foreground(colorAccent),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

func levelStyle(l difficulty.Level) lipgloss.Style {
	switch l {
	case difficulty.Easy:
		return lipgloss.NewStyle().Foreground(colorEasy)
	case difficulty.Hard:
		return lipgloss.NewStyle().Foreground(colorHard)
	default:
		return lipgloss.NewStyle().Foreground(colorMedium)
	}
}

func renderLevel(l difficulty.Level) string {
	return levelStyle(l).Render(fmt.Sprintf("%-6s", l))
}

func checkbox(on bool) string {
	if on {
		return styles.Success.Render("[x]")
	}
	return "[ ]"
}

func star(on bool) string {
	if on {
		return "*"
	}
	return " "
}

func progressBar(c progress.Count, width int) string {
	filled := 0
	if c.Total > 0 {
		filled = c.Completed * width / c.Total
	}
	return styles.Success.Render(strings.Repeat("#", filled)) +
		styles.Muted.Render(strings.Repeat("-", width-filled))
}

func printHits(w io.Writer, hits []search.Hit, r progress.Reader) {
	for _, h := range hits {
		fmt.Fprintf(w, "%s %s %s  %-22s %s %s\n",
			checkbox(r.IsCompleted(h.Question.ID)),
			star(r.IsBookmarked(h.Question.ID)),
			renderLevel(h.Level()),
			h.Question.ID,
			h.Question.Heading,
			styles.Muted.Render("("+h.TopicName+" / "+h.CategoryName+")"),
		)
	}
}
