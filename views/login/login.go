package login

import (
	"strings"

	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the login view
func Nav(width int, connecting bool) string {
	keys := []string{
		styles.Key("Enter") + " connect wallet",
		styles.Key("l") + " logger",
		styles.Key("q") + " quit",
	}
	if connecting {
		keys = keys[1:]
	}
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the unauthenticated screen.
func Render(width int, contract, walletSource string, connecting bool, spinnerView string) string {
	title := helpers.FadeString("Estate Registry", "#7D5AFC", "#FF87D7")
	sub := styles.Muted("Tokenized property marketplace")

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		sub,
		"",
		styles.Muted("Contract  ") + lipgloss.NewStyle().Foreground(styles.CText).Render(contract),
		styles.Muted("Wallet    ") + lipgloss.NewStyle().Foreground(styles.CText).Render(helpers.Truncate(walletSource, 60)),
		"",
	}

	if connecting {
		lines = append(lines, spinnerView+" waiting for wallet authorization…")
	} else {
		lines = append(lines, "Press "+styles.Key("Enter")+" to connect your wallet.")
	}

	return lipgloss.NewStyle().
		Width(max(0, width-6)).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
