package transactions

import (
	"fmt"
	"strings"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/bubbles/table"
)

// AddrWidth is the width of each address column for a screen width.
func AddrWidth(width int) int {
	return max(13, (width-6-18-16)/2)
}

// Columns returns the history table layout.
func Columns(width int) []table.Column {
	addr := AddrWidth(width)
	return []table.Column{
		{Title: "Token", Width: 6},
		{Title: "From", Width: addr},
		{Title: "To", Width: addr},
		{Title: "Date", Width: 18},
	}
}

// Rows converts transfers into table rows, addresses shortened when the
// column cannot hold them.
func Rows(items []contract.Transfer, addrWidth int) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, tr := range items {
		from, to := tr.From.Hex(), tr.To.Hex()
		if addrWidth < len(from) {
			from, to = helpers.ShortenAddr(from), helpers.ShortenAddr(to)
		}
		rows = append(rows, table.Row{
			tr.TokenID.String(),
			from,
			to,
			helpers.FormatTime(tr.Timestamp),
		})
	}
	return rows
}

// Nav returns the navigation bar for the transactions view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("r") + " refresh",
		styles.Key("l") + " logger",
		styles.Key("q") + " quit",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the transaction history.
func Render(t table.Model, count int, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Transaction History")
	sub := styles.Muted("Every ownership transfer recorded by the contract")
	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " loading history…"
	}
	if count == 0 {
		return h + "\n" + sub + "\n\n" + styles.Muted("No transfers recorded yet.")
	}
	return h + "\n" + sub + "\n\n" + t.View() + "\n\n" + styles.Muted(fmt.Sprintf("%d transfers", count))
}
