package details

import (
	"fmt"
	"strings"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Document is the inspection state of the property's document.
type Document struct {
	Info       *ipfs.Document
	Err        string
	Inspecting bool
}

// Nav returns the navigation bar for details view
func Nav(width int, canPurchase bool) string {
	keys := []string{styles.Key("c") + " copy owner"}
	if canPurchase {
		keys = append(keys, styles.Key("p")+" purchase")
	}
	keys = append(keys,
		styles.Key("i")+" inspect document",
		styles.Key("o")+" QR link",
		styles.Key("r")+" refresh",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

func field(label, value string) string {
	return lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Width(16).Render(label) +
		lipgloss.NewStyle().Foreground(styles.CText).Render(value)
}

// Render renders every field of a property record. owner is the current
// holder; the zero address means it is not known.
func Render(p contract.Property, owner common.Address, money helpers.Money, doc Document, qr, copiedMsg string, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Property #"+p.TokenID.String())
	sub := styles.Muted(p.Name + " · " + p.Location)
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}
	if loading {
		return h + "\n" + sub + "\n\n" + spinnerView + " refreshing…"
	}

	sale := styles.Muted("not for sale")
	if p.ForSale {
		sale = styles.SuccessStyle.Render("for sale")
	}

	lines := []string{
		h, sub, "",
		field("Type", p.Type.String()),
		field("Value", money.Format(p.Value)),
		field("Status", sale),
		field("Owner", ownerLabel(owner)),
		field("Created", helpers.FormatTime(p.CreatedAt)),
		field("Last transfer", helpers.FormatTime(p.LastTransferAt)),
		field("Document", orDash(p.DocumentHash)),
		field("Image", orDash(p.ImageHash)),
		"",
		lipgloss.NewStyle().Foreground(styles.CMuted).Render("Ownership history"),
	}

	if len(p.PreviousOwners) == 0 {
		lines = append(lines, styles.Muted("  none recorded"))
	}
	for _, o := range p.PreviousOwners {
		marker := "  "
		if o == owner {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("★ ")
		}
		lines = append(lines, marker+o.Hex())
	}

	switch {
	case doc.Inspecting:
		lines = append(lines, "", spinnerView+" inspecting document…")
	case doc.Err != "":
		lines = append(lines, "", styles.WarnStyle.Render("⚠ "+doc.Err))
	case doc.Info != nil:
		info := fmt.Sprintf("%s, %d bytes", doc.Info.MimeType, doc.Info.Size)
		if doc.Info.Truncated {
			info += " (truncated)"
		}
		lines = append(lines, "", field("Document type", info))
	}

	if qr != "" {
		lines = append(lines, "", styles.Muted(ipfs.GatewayURL(p.DocumentHash)), qr)
	}

	return strings.Join(lines, "\n")
}

func ownerLabel(owner common.Address) string {
	if owner == (common.Address{}) {
		return "—"
	}
	return owner.Hex()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
