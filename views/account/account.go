package account

import (
	"fmt"
	"math/big"
	"strings"

	"estate-dapp-tui/styles"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the account view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " details",
		styles.Key("t") + " toggle sale",
		styles.Key("e") + " exchange houses",
		styles.Key("c") + " copy address",
		styles.Key("r") + " refresh",
		styles.Key("l") + " logger",
		styles.Key("q") + " quit",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the properties owned by the connected account.
func Render(address, balance string, t table.Model, rows int, count *big.Int, copiedMsg string, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("My Account")
	sub := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true).Render(address)
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " loading your properties…"
	}

	owned := "?"
	if count != nil {
		owned = count.String()
	}
	label := lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
	summary := label.Render("Owned") + "  " + owned
	if balance != "" {
		summary += "     " + label.Render("Balance") + "  " + balance
	}

	if rows == 0 {
		return h + "\n" + sub + "\n\n" + summary + "\n\n" + styles.Muted("You do not own any property yet.")
	}
	status := styles.Muted(fmt.Sprintf("%d listed below", rows))
	return h + "\n" + sub + "\n\n" + summary + "\n\n" + t.View() + "\n\n" + status
}
