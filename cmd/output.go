package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/internly/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	cautionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	scamStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(fmt.Sprint(value)))
}

func statusBadge(status models.VerificationStatus) string {
	switch status {
	case models.StatusVerified:
		return verifiedStyle.Render("✓ " + string(status))
	case models.StatusUseCaution:
		return cautionStyle.Render("⚠ " + string(status))
	case models.StatusPotentialScam:
		return scamStyle.Render("✗ " + string(status))
	default:
		return mutedStyle.Render(string(status))
	}
}

func matchStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 70:
		return verifiedStyle
	case pct >= 40:
		return cautionStyle
	default:
		return scamStyle
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return mutedStyle.Render("none")
	}
	return strings.Join(values, ", ")
}
