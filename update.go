package main

import (
	"errors"
	"fmt"

	"estate-dapp-tui/config"
	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/views/details"
	"estate-dapp-tui/views/properties"
	"estate-dapp-tui/views/transactions"
	"estate-dapp-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.form != nil {
			// Intercept ESC key to cancel form
			if msg.String() == "esc" {
				m.closeForm()
				return m, nil
			}
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logReady = true
		if m.w > 0 {
			m.logViewport.Width = max(0, m.w-6)
		}
		m.addLog("info", "Logger enabled")
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.resizeTables()

		if m.logEnabled {
			// Width accounts for border and padding
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case walletConnectedMsg:
		return m.handleConnected(msg)

	case adminFlagMsg:
		if m.session == nil {
			return m, nil
		}
		if msg.err != nil {
			m.addLog("warning", "admin check failed: "+msg.err.Error())
			return m, nil
		}
		m.session.isAdmin = msg.isAdmin
		if msg.isAdmin {
			m.addLog("info", "Connected account is an admin")
		} else if m.session.view == viewAdmin {
			return m, m.switchView(viewProperties)
		}
		return m, nil

	case propertiesLoadedMsg:
		m.props.loading = false
		if msg.err != nil {
			return m, m.failure("load properties", msg.err)
		}
		m.props.items = msg.items
		m.props.filter = msg.filter
		m.props.table.SetRows(properties.Rows(msg.items, m.money))
		m.props.table.SetCursor(0)
		m.addLog("success", fmt.Sprintf("Loaded %d properties", len(msg.items)))
		return m, nil

	case myPropertiesLoadedMsg:
		m.mine.loading = false
		if msg.err != nil {
			return m, m.failure("load your properties", msg.err)
		}
		m.mine.items = msg.items
		m.mine.count = msg.count
		m.mine.table.SetRows(properties.Rows(msg.items, m.money))
		m.mine.table.SetCursor(0)
		m.addLog("success", fmt.Sprintf("Loaded %d owned properties", len(msg.items)))
		return m, nil

	case balanceLoadedMsg:
		b := msg.balance
		m.mine.balance = &b
		if b.ErrMessage != "" {
			m.addLog("warning", b.ErrMessage)
		}
		return m, nil

	case adminsLoadedMsg:
		m.admins.loading = false
		if msg.err != nil {
			return m, m.failure("load admins", msg.err)
		}
		m.setAdmins(msg.admins)
		return m, nil

	case historyLoadedMsg:
		m.history.loading = false
		if msg.err != nil {
			return m, m.failure("load transaction history", msg.err)
		}
		m.history.items = msg.items
		m.history.table.SetRows(transactions.Rows(msg.items, transactions.AddrWidth(m.w)))
		m.history.table.SetCursor(0)
		return m, nil

	case propertyLoadedMsg:
		m.details.loading = false
		if msg.err != nil {
			return m, m.failure("load property", msg.err)
		}
		if m.details.open && msg.property.TokenID != nil && m.details.property.TokenID.Cmp(msg.property.TokenID) == 0 {
			m.details.property = msg.property
			m.details.owner = msg.owner
			if msg.ownerErr != nil {
				m.addLog("warning", "owner lookup failed: "+msg.ownerErr.Error())
			}
			if m.details.qr != "" {
				m.details.qr = generateQRCode(ipfs.GatewayURL(msg.property.DocumentHash))
			}
		}
		return m, nil

	case documentInspectedMsg:
		m.details.doc.Inspecting = false
		if msg.err != nil {
			m.details.doc.Err = msg.err.Error()
			m.addLog("error", "document inspection failed: "+msg.err.Error())
			return m, nil
		}
		doc := msg.doc
		m.details.doc.Info = &doc
		m.addLog("info", fmt.Sprintf("Document %s is %s", doc.CID, doc.MimeType))
		return m, nil

	case txDoneMsg:
		return m.handleTxDone(msg)

	case notifyExpiredMsg:
		if m.notice != nil && m.notice.id == msg.id {
			m.notice = nil
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied!"
		return m, clearCopied()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil
	}

	// huh internal messages
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// updateForm forwards msg to the active form and submits it on completion.
func (m *model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm turns the completed draft into a contract call.
func (m *model) submitForm() tea.Cmd {
	kind := m.formKind
	mint, adminAddr, search, filter, exchange := m.mintDraft, m.adminAddr, m.search, m.filter, m.exchange
	m.closeForm()

	if m.session == nil {
		return nil
	}
	svc := m.session.estate

	switch kind {
	case formNone:
		return nil

	case formMint:
		req, err := mint.request(m.money)
		if err != nil {
			return m.notify(noteFailure, "Invalid property: "+err.Error())
		}
		m.addLog("info", fmt.Sprintf("Minting %s %q at %s", req.Type, req.Name, req.Location))
		return m.startTx(txMint, mintProperty(svc, m.docs, req))

	case formAddAdmin:
		m.addLog("info", "Adding admin "+*adminAddr)
		return m.startTx(txAddAdmin, addAdmin(svc, m.resolver, *adminAddr))

	case formSearch:
		m.props.loading = true
		m.props.query = searchByType(svc, search.Type)
		m.addLog("info", "Searching properties of type "+search.Type.String())
		return m.props.query

	case formFilter:
		lo, hi, err := filter.bounds(m.money)
		if err != nil {
			return m.notify(noteFailure, "Invalid range: "+err.Error())
		}
		m.props.loading = true
		m.props.query = filterByValue(svc, lo, hi, filter.label())
		m.addLog("info", "Filtering properties by "+filter.label())
		return m.props.query

	case formExchange:
		ids, err := exchange.tokenIDs()
		if err != nil {
			return m.notify(noteFailure, "Invalid exchange: "+err.Error())
		}
		m.addLog("info", fmt.Sprintf("Exchanging %d houses for a %s", len(ids), exchange.Target))
		return m.startTx(txExchange, exchangeHouses(svc, ids, exchange.Target))
	}
	return nil
}

// startTx runs a write unless another one is still awaiting confirmation.
func (m *model) startTx(action txAction, cmd tea.Cmd) tea.Cmd {
	if m.pendingTx != "" {
		return m.notify(noteWarn, "Wait for the pending "+m.pendingTx+" to confirm.")
	}
	m.pendingTx = action.String()
	return tea.Batch(cmd, m.spin.Tick)
}

func (m *model) handleConnected(msg walletConnectedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// the first request is still waiting on the wallet
		if !errors.Is(msg.err, wallet.ErrRequestPending) {
			m.connecting = false
		}
		return m, m.connectFailure(msg.err)
	}
	if m.session != nil {
		return m, nil
	}

	m.connecting = false
	account := msg.signer.Address()
	m.session = &session{
		signer:  msg.signer,
		account: account,
		estate:  m.bindSigner(msg.signer),
		view:    viewProperties,
	}
	m.addLog("success", "Wallet connected: "+account.Hex())

	return m, tea.Batch(
		loadAdminFlag(m.session.estate, account),
		m.refreshView(),
		m.notify(noteSuccess, "Connected as "+helpers.ShortenAddr(account.Hex())),
	)
}

func (m *model) handleTxDone(msg txDoneMsg) (tea.Model, tea.Cmd) {
	m.pendingTx = ""
	if msg.err != nil {
		return m, m.failure(msg.action.String(), msg.err)
	}
	m.addLog("success", msg.action.String()+" confirmed")

	switch msg.action {
	case txAddAdmin:
		// the list is updated locally, not re-queried
		m.setAdmins(addAdminTo(m.admins.items, msg.account))
		return m, m.notify(noteSuccess, "Admin "+helpers.ShortenAddr(msg.account.Hex())+" added.")

	case txRemoveAdmin:
		m.setAdmins(removeAdminFrom(m.admins.items, msg.account))
		note := m.notify(noteSuccess, "Admin "+helpers.ShortenAddr(msg.account.Hex())+" removed.")
		if m.session != nil && msg.account == m.session.account {
			m.session.isAdmin = false
			return m, tea.Batch(note, m.switchView(viewProperties))
		}
		return m, note

	case txPurchase:
		return m, tea.Batch(
			m.notify(noteSuccess, "Property #"+msg.tokenID.String()+" purchased."),
			m.refreshAfterWrite(),
		)

	case txToggleSale:
		return m, tea.Batch(
			m.notify(noteSuccess, "Sale status of property #"+msg.tokenID.String()+" updated."),
			m.refreshAfterWrite(),
		)

	case txMint:
		return m, tea.Batch(m.notify(noteSuccess, "Property minted."), m.refreshAfterWrite())

	case txExchange:
		return m, tea.Batch(m.notify(noteSuccess, "Houses exchanged."), m.refreshAfterWrite())
	}
	return m, nil
}

// refreshAfterWrite re-queries the current view and an open details panel.
func (m *model) refreshAfterWrite() tea.Cmd {
	cmd := m.refreshView()
	if m.details.open && m.session != nil {
		m.details.loading = true
		cmd = tea.Batch(cmd, loadProperty(m.session.estate, m.details.property.TokenID))
	}
	return cmd
}

func addAdminTo(admins []common.Address, addr common.Address) []common.Address {
	for _, a := range admins {
		if a == addr {
			return admins
		}
	}
	out := make([]common.Address, 0, len(admins)+1)
	out = append(out, admins...)
	return append(out, addr)
}

func removeAdminFrom(admins []common.Address, addr common.Address) []common.Address {
	out := make([]common.Address, 0, len(admins))
	for _, a := range admins {
		if a != addr {
			out = append(out, a)
		}
	}
	return out
}

func (m *model) setAdmins(admins []common.Address) {
	m.admins.items = admins
	if m.admins.cursor >= len(admins) {
		m.admins.cursor = max(0, len(admins)-1)
	}
}

// switchView mounts v and issues its query.
func (m *model) switchView(v viewKind) tea.Cmd {
	if m.session == nil {
		return nil
	}
	if v == viewAdmin && !m.session.isAdmin {
		return nil
	}
	m.session.view = v
	m.details = detailsState{}
	m.props.query = nil
	m.props.filter = ""
	return m.refreshView()
}

func (m *model) resizeTables() {
	h := max(5, m.h-16)
	m.props.table.SetColumns(properties.Columns(m.w))
	m.props.table.SetHeight(h)
	m.mine.table.SetColumns(properties.Columns(m.w))
	m.mine.table.SetHeight(h - 2)
	m.history.table.SetColumns(transactions.Columns(m.w))
	m.history.table.SetRows(transactions.Rows(m.history.items, transactions.AddrWidth(m.w)))
	m.history.table.SetHeight(h)
}

// toggleLogger flips the log panel and persists the choice.
func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled
	if m.configPath != "" {
		if err := config.SetLogger(m.configPath, m.logEnabled); err != nil {
			m.logger.Warn("saving config failed", "err", err)
		}
	}
	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	// Clear logs and de-initialize when disabling
	if m.logs != nil {
		m.logs.Reset()
	}
	m.logReady = false
	return nil
}

// -------------------- KEYS --------------------

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showRemoveDialog {
		return m.handleRemoveDialog(msg)
	}

	// global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "l", "L":
		return m, m.toggleLogger()

	case "pageup", "pagedown":
		// Allow scrolling in log viewport when enabled
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.session == nil {
		if msg.String() == "enter" {
			m.connecting = true
			m.addLog("info", "Requesting wallet connection ("+m.walletSource+")")
			return m, tea.Batch(connectWallet(m.connect), m.spin.Tick)
		}
		return m, nil
	}

	if m.details.open {
		return m.handleDetailsKey(msg)
	}

	// view switching
	views := m.visibleViews()
	switch msg.String() {
	case "tab", "shift+tab":
		idx := 0
		for i, v := range views {
			if v == m.session.view {
				idx = i
			}
		}
		if msg.String() == "tab" {
			idx = (idx + 1) % len(views)
		} else {
			idx = (idx - 1 + len(views)) % len(views)
		}
		return m, m.switchView(views[idx])
	case "1", "2", "3", "4":
		i := int(msg.String()[0] - '1')
		if i < len(views) {
			return m, m.switchView(views[i])
		}
		return m, nil
	}

	switch m.session.view {
	case viewProperties:
		return m.handlePropertiesKey(msg)
	case viewAccount:
		return m.handleAccountKey(msg)
	case viewAdmin:
		return m.handleAdminKey(msg)
	case viewTransactions:
		return m.handleTransactionsKey(msg)
	}
	return m, nil
}

// openDetails shows p and refreshes it from the contract.
func (m *model) openDetails(p contract.Property) tea.Cmd {
	m.details = detailsState{open: true, property: p, loading: true}
	return loadProperty(m.session.estate, p.TokenID)
}

func (m *model) purchaseSelected() tea.Cmd {
	p, ok := m.purchasable()
	if !ok {
		return nil
	}
	m.addLog("info", fmt.Sprintf("Purchasing property #%s for %s", p.TokenID.String(), m.money.Format(p.Value)))
	return m.startTx(txPurchase, purchase(m.session.estate, p))
}

func (m *model) handlePropertiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if p, ok := m.selectedProperty(); ok {
			return m, m.openDetails(p)
		}
		return m, nil
	case "p", "P":
		return m, m.purchaseSelected()
	case "s", "S":
		m.openSearchForm()
		return m, nil
	case "f", "F":
		m.openFilterForm()
		return m, nil
	case "x", "X":
		m.props.query = nil
		return m, m.refreshView()
	case "r", "R":
		return m, m.refreshView()
	}

	var cmd tea.Cmd
	m.props.table, cmd = m.props.table.Update(msg)
	return m, cmd
}

func (m *model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if p, ok := m.selectedProperty(); ok {
			return m, m.openDetails(p)
		}
		return m, nil
	case "t", "T":
		p, ok := m.selectedProperty()
		if !ok {
			return m, nil
		}
		m.addLog("info", fmt.Sprintf("Setting property #%s for sale: %t", p.TokenID.String(), !p.ForSale))
		return m, m.startTx(txToggleSale, toggleSale(m.session.estate, p))
	case "e", "E":
		if !m.openExchangeForm() {
			return m, m.notify(noteWarn, "You do not own any house to exchange.")
		}
		return m, nil
	case "c", "C":
		m.addLog("info", "Copied account address to clipboard")
		return m, copyToClipboard(m.session.account.Hex())
	case "r", "R":
		return m, m.refreshView()
	}

	var cmd tea.Cmd
	m.mine.table, cmd = m.mine.table.Update(msg)
	return m, cmd
}

func (m *model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.admins.cursor > 0 {
			m.admins.cursor--
		}
	case "down", "j":
		if m.admins.cursor < len(m.admins.items)-1 {
			m.admins.cursor++
		}
	case "m", "M":
		m.openMintForm()
	case "a", "A":
		m.openAddAdminForm()
	case "d", "D", "delete", "backspace":
		if len(m.admins.items) == 0 {
			return m, nil
		}
		m.showRemoveDialog = true
		m.removeYesSelected = true // Default to Yes button
		m.removeTarget = m.admins.items[m.admins.cursor]
	case "r", "R":
		return m, m.refreshView()
	}
	return m, nil
}

func (m *model) handleTransactionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if s := msg.String(); s == "r" || s == "R" {
		return m, m.refreshView()
	}
	var cmd tea.Cmd
	m.history.table, cmd = m.history.table.Update(msg)
	return m, cmd
}

func (m *model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.details.property
	switch msg.String() {
	case "esc", "backspace":
		m.details = detailsState{}
	case "c", "C":
		owner := m.details.owner
		if owner == (common.Address{}) {
			return m, m.notify(noteWarn, "The current owner is not known yet.")
		}
		m.addLog("info", "Copied owner "+owner.Hex()+" to clipboard")
		return m, copyToClipboard(owner.Hex())
	case "p", "P":
		return m, m.purchaseSelected()
	case "i", "I":
		if p.DocumentHash == "" {
			return m, m.notify(noteWarn, "This property has no document.")
		}
		if m.docs == nil {
			return m, m.notify(noteWarn, "No IPFS node configured.")
		}
		m.details.doc = details.Document{Inspecting: true}
		return m, tea.Batch(inspectDocument(m.docs, p.DocumentHash), m.spin.Tick)
	case "o", "O":
		if m.details.qr != "" {
			m.details.qr = ""
			return m, nil
		}
		if p.DocumentHash == "" {
			return m, m.notify(noteWarn, "This property has no document.")
		}
		m.details.qr = generateQRCode(ipfs.GatewayURL(p.DocumentHash))
	case "r", "R":
		m.details.loading = true
		return m, loadProperty(m.session.estate, p.TokenID)
	}
	return m, nil
}

func (m *model) handleRemoveDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "h":
		m.removeYesSelected = !m.removeYesSelected
	case "y", "Y":
		m.removeYesSelected = true
		return m, m.confirmRemove()
	case "n", "N", "esc":
		m.showRemoveDialog = false
	case "enter":
		if m.removeYesSelected {
			return m, m.confirmRemove()
		}
		m.showRemoveDialog = false
	}
	return m, nil
}

func (m *model) confirmRemove() tea.Cmd {
	m.showRemoveDialog = false
	addr := m.removeTarget
	m.addLog("info", "Removing admin "+addr.Hex())
	return m.startTx(txRemoveAdmin, removeAdmin(m.session.estate, addr))
}
