package header

import (
	"strings"

	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one navigation entry.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Render renders the global header: title, connected account and tabs.
func Render(width int, account string, isAdmin bool, tabs []Tab) string {
	title := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("Estate Registry", "#7D5AFC", "#FF87D7"))

	right := styles.Muted("not connected")
	if account != "" {
		right = lipgloss.NewStyle().Foreground(styles.CAccent2).Render(helpers.ShortenAddr(account))
		if isAdmin {
			right = styles.WarnStyle.Render("admin") + "  " + right
		}
	}

	gap := max(1, width-6-lipgloss.Width(title)-lipgloss.Width(right))
	top := title + strings.Repeat(" ", gap) + right

	if len(tabs) == 0 {
		return top
	}

	var rendered []string
	for _, t := range tabs {
		label := t.Key + " " + t.Label
		if t.Active {
			rendered = append(rendered, styles.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, styles.TabStyle.Render(label))
		}
	}
	return top + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
