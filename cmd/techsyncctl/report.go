package main

import (
	"fmt"
	"strings"

	"techsync/internal/domain/assessment"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func renderReport(res assessment.AssessmentResult, minScore int, color bool) string {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	verdict := style(failStyle, "FAILED")
	if res.Passed {
		verdict = style(passStyle, "PASSED")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d (min %d) %s\n", style(titleStyle, "Score:"), res.Score, assessment.MaxScore, minScore, verdict)
	fmt.Fprintf(&b, "%s %s\n\n", style(titleStyle, "Tier:"), res.Tier)

	for _, s := range res.Signals {
		mark := style(failStyle, "✗")
		if s.Passed {
			mark = style(passStyle, "✓")
		}
		fmt.Fprintf(&b, "  %s %-20s %s\n", mark, s.Name, style(mutedStyle, fmt.Sprintf("%d/%d", s.Points, s.MaxPoints)))
	}

	feedback := res.Feedback
	if color {
		feedback = boxStyle.Render(feedback)
	}
	fmt.Fprintf(&b, "\n%s\n", feedback)
	return b.String()
}
