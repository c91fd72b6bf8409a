package properties

import (
	"fmt"
	"strings"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Columns returns the property table layout for the given width.
func Columns(width int) []table.Column {
	fixed := 6 + 9 + 16 + 9
	flex := max(20, width-fixed-16)
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Type", Width: 9},
		{Title: "Name", Width: flex / 2},
		{Title: "Location", Width: flex - flex/2},
		{Title: "Value", Width: 16},
		{Title: "For sale", Width: 9},
	}
}

// Rows converts property records into table rows.
func Rows(items []contract.Property, money helpers.Money) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, p := range items {
		sale := "no"
		if p.ForSale {
			sale = "yes"
		}
		rows = append(rows, table.Row{
			p.TokenID.String(),
			p.Type.String(),
			p.Name,
			p.Location,
			money.Format(p.Value),
			sale,
		})
	}
	return rows
}

// Nav returns the navigation bar for the properties view
func Nav(width int, canPurchase bool) string {
	keys := []string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " details",
	}
	if canPurchase {
		keys = append(keys, styles.Key("p")+" purchase")
	}
	keys = append(keys,
		styles.Key("s")+" search type",
		styles.Key("f")+" filter value",
		styles.Key("x")+" reset",
		styles.Key("r")+" refresh",
		styles.Key("l")+" logger",
		styles.Key("q")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the available properties list.
func Render(t table.Model, count int, filter string, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Available Properties")
	sub := styles.Muted("Properties currently listed on the registry")
	if filter != "" {
		sub = lipgloss.NewStyle().Foreground(styles.CAccent).Render("Filter: " + filter)
	}

	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " loading properties…"
	}
	if count == 0 {
		return h + "\n" + sub + "\n\n" + styles.Muted("No properties found.")
	}

	status := styles.Muted(fmt.Sprintf("%d properties", count))
	return h + "\n" + sub + "\n\n" + t.View() + "\n\n" + status
}
