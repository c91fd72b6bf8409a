package admin

import (
	"fmt"
	"strings"

	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Nav returns the navigation bar for the admin view
func Nav(width int, formOpen bool) string {
	var left string
	if formOpen {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " submit",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " move",
			styles.Key("m") + " mint property",
			styles.Key("a") + " add admin",
			styles.Key("d") + " remove admin",
			styles.Key("r") + " refresh",
			styles.Key("l") + " logger",
			styles.Key("q") + " quit",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}

// RenderList renders the admin addresses with the cursor marker.
func RenderList(admins []common.Address, selectedIdx int, self common.Address) string {
	if len(admins) == 0 {
		return styles.Muted("No admins returned by the contract.")
	}

	var items []string
	for i, a := range admins {
		var marker, line string
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			line = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render(a.Hex())
		} else {
			marker = "  "
			line = helpers.FadeString(a.Hex(), "#7D5AFC", "#FF87D7")
		}
		if a == self {
			line += "  " + styles.Muted("(you)")
		}
		items = append(items, marker+line)
	}
	return strings.Join(items, "\n")
}

// Render renders the admin panel; form is the active form view, if any.
func Render(admins []common.Address, selectedIdx int, self common.Address, form string, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Admin Panel")
	sub := styles.Muted("Mint properties and manage administrators")

	if form != "" {
		return h + "\n" + sub + "\n\n" + form
	}
	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " loading admins…"
	}

	status := styles.Muted(fmt.Sprintf("%d admins", len(admins)))
	return h + "\n" + sub + "\n\n" + RenderList(admins, selectedIdx, self) + "\n\n" + status
}
