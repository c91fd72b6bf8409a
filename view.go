package main

import (
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/styles"
	"estate-dapp-tui/views/account"
	"estate-dapp-tui/views/admin"
	"estate-dapp-tui/views/details"
	"estate-dapp-tui/views/header"
	logview "estate-dapp-tui/views/log"
	"estate-dapp-tui/views/login"
	"estate-dapp-tui/views/properties"
	"estate-dapp-tui/views/transactions"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m model) renderRemoveDialog() string {
	var (
		dialogBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#874BFD")).
				Padding(1, 0)

		buttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#888B7E")).
				Padding(0, 3).
				MarginTop(1)

		activeButtonStyle = buttonStyle.
					Foreground(lipgloss.Color("#FFF7DB")).
					Background(lipgloss.Color("#F25D94")).
					MarginRight(2).
					Underline(true)
	)
	text := "Revoke admin rights of " + helpers.ShortenAddr(m.removeTarget.Hex()) + "?"
	if m.session != nil && m.removeTarget == m.session.account {
		text = "Revoke your own admin rights?"
	}
	question := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).
		Render(helpers.FadeString(text, "#F25D94", "#EDFF82"))

	// Apply active style to the selected button
	var okButton, cancelButton string
	if m.removeYesSelected {
		okButton = activeButtonStyle.Render("Yes")
		cancelButton = buttonStyle.Render("No")
	} else {
		okButton = buttonStyle.MarginRight(2).Render("Yes")
		cancelButton = activeButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, buttons)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialogBoxStyle.Render(ui),
	)
}

func (m model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	switch m.notice.level {
	case noteSuccess:
		return styles.SuccessStyle.Render("✓ " + m.notice.text)
	case noteFailure:
		return styles.FailureStyle.Render("✗ " + m.notice.text)
	case noteWarn:
		return styles.WarnStyle.Render("⚠ " + m.notice.text)
	}
	return m.notice.text
}

func (m model) headerTabs() []header.Tab {
	var tabs []header.Tab
	for i, v := range m.visibleViews() {
		tabs = append(tabs, header.Tab{
			Key:    string(rune('1' + i)),
			Label:  v.String(),
			Active: m.session != nil && v == m.session.view,
		})
	}
	return tabs
}

// formPanel renders the active form in place of the list it applies to.
func (m model) formPanel() string {
	title := map[formKind]string{
		formMint:     "Mint Property",
		formAddAdmin: "Add Admin",
		formSearch:   "Search Properties",
		formFilter:   "Filter Properties",
		formExchange: "Exchange Houses",
	}[m.formKind]
	return styles.TitleStyle.Render(title) + "\n\n" + m.form.View()
}

// pageContent renders the body and navigation bar of the session view.
func (m model) pageContent() (string, string) {
	s := m.session

	if m.details.open {
		_, canPurchase := m.purchasable()
		body := details.Render(m.details.property, m.details.owner, m.money, m.details.doc, m.details.qr, m.copiedMsg, m.details.loading, m.spin.View())
		return body, details.Nav(m.w, canPurchase)
	}

	switch s.view {
	case viewProperties:
		if m.form != nil {
			return m.formPanel(), admin.Nav(m.w, true)
		}
		_, canPurchase := m.purchasable()
		body := properties.Render(m.props.table, len(m.props.items), m.props.filter, m.props.loading, m.spin.View())
		return body, properties.Nav(m.w, canPurchase)

	case viewAccount:
		if m.form != nil {
			return m.formPanel(), admin.Nav(m.w, true)
		}
		balance := ""
		if b := m.mine.balance; b != nil && b.ErrMessage == "" {
			balance = m.money.Format(b.Wei) + styles.Muted("  at "+helpers.LoadedAt(b.LoadedAt, m.mine.loading))
		}
		body := account.Render(s.account.Hex(), balance, m.mine.table, len(m.mine.items), m.mine.count, m.copiedMsg, m.mine.loading, m.spin.View())
		return body, account.Nav(m.w)

	case viewAdmin:
		form := ""
		if m.form != nil {
			form = m.formPanel()
		}
		body := admin.Render(m.admins.items, m.admins.cursor, s.account, form, m.admins.loading, m.spin.View())
		return body, admin.Nav(m.w, m.form != nil)

	case viewTransactions:
		body := transactions.Render(m.history.table, len(m.history.items), m.history.loading, m.spin.View())
		return body, transactions.Nav(m.w)
	}
	return "", ""
}

func (m *model) View() string {
	if m.showRemoveDialog {
		return m.renderRemoveDialog()
	}

	accountHex := ""
	isAdmin := false
	if m.session != nil {
		accountHex = m.session.account.Hex()
		isAdmin = m.session.isAdmin
	}
	hdr := header.Render(m.w, accountHex, isAdmin, m.headerTabs())
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(hdr)

	var body, nav string
	if m.session == nil {
		body = login.Render(m.w, m.contractAddr.Hex(), m.walletSource, m.connecting, m.spin.View())
		nav = login.Nav(m.w, m.connecting)
	} else {
		body, nav = m.pageContent()
	}

	if m.pendingTx != "" {
		body += "\n\n" + m.spin.View() + " waiting for " + m.pendingTx + " confirmation…"
	}
	if n := m.renderNotice(); n != "" {
		body = n + "\n\n" + body
	}
	pageContent := panelStyle.Width(max(0, m.w-2)).Render(body)

	sections := []string{headerPanel, pageContent, nav}
	if m.logEnabled {
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
