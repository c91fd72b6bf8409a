package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/rpc"
	"estate-dapp-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/mdp/qrterminal/v3"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectWallet asks the wallet for an authorized account
func connectWallet(connect contract.Connector) tea.Cmd {
	return func() tea.Msg {
		if connect == nil {
			return walletConnectedMsg{err: wallet.ErrNoWallet}
		}
		s, err := connect(context.Background())
		return walletConnectedMsg{signer: s, err: err}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

func loadAdminFlag(svc estateService, account common.Address) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.IsAdmin(context.Background(), account)
		return adminFlagMsg{isAdmin: ok, err: err}
	}
}

func loadAvailable(svc estateService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.AvailableProperties(context.Background())
		return propertiesLoadedMsg{items: items, err: err}
	}
}

func searchByType(svc estateService, t contract.PropertyType) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.SearchByType(context.Background(), t)
		return propertiesLoadedMsg{items: items, filter: "type " + t.String(), err: err}
	}
}

func filterByValue(svc estateService, min, max *big.Int, label string) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.FilterByValue(context.Background(), min, max)
		return propertiesLoadedMsg{items: items, filter: label, err: err}
	}
}

// loadMine fetches the owned list and the owned count together
func loadMine(svc estateService, account common.Address) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		items, err := svc.MyProperties(ctx)
		if err != nil {
			return myPropertiesLoadedMsg{err: err}
		}
		count, err := svc.PropertiesCount(ctx, account)
		if err != nil {
			// the list is still worth showing
			count = big.NewInt(int64(len(items)))
		}
		return myPropertiesLoadedMsg{items: items, count: count}
	}
}

func loadBalance(chain rpc.BalanceReader, account common.Address, timeout time.Duration) tea.Cmd {
	if chain == nil {
		return nil
	}
	return func() tea.Msg {
		return balanceLoadedMsg{balance: rpc.LoadBalance(chain, account, timeout)}
	}
}

func loadAdmins(svc estateService) tea.Cmd {
	return func() tea.Msg {
		admins, err := svc.Admins(context.Background())
		return adminsLoadedMsg{admins: admins, err: err}
	}
}

func loadHistory(svc estateService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.TransactionHistory(context.Background())
		return historyLoadedMsg{items: items, err: err}
	}
}

// loadProperty fetches the record and its current holder
func loadProperty(svc estateService, tokenID *big.Int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := svc.Property(ctx, tokenID)
		if err != nil {
			return propertyLoadedMsg{err: err}
		}
		owner, ownerErr := svc.OwnerOf(ctx, tokenID)
		return propertyLoadedMsg{property: p, owner: owner, ownerErr: ownerErr}
	}
}

// inspectDocument sniffs the document behind an IPFS reference
func inspectDocument(docs *ipfs.Store, ref string) tea.Cmd {
	return func() tea.Msg {
		doc, err := docs.Inspect(context.Background(), ref)
		return documentInspectedMsg{doc: doc, err: err}
	}
}

// Writes carry no deadline: they wait for the wallet and for confirmation.

func purchase(svc estateService, p contract.Property) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.Purchase(context.Background(), p.TokenID, p.Value)
		return txDoneMsg{action: txPurchase, tokenID: p.TokenID, err: err}
	}
}

func toggleSale(svc estateService, p contract.Property) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.ToggleSale(context.Background(), p)
		return txDoneMsg{action: txToggleSale, tokenID: p.TokenID, err: err}
	}
}

// mintProperty uploads local document and image files before minting
func mintProperty(svc estateService, docs *ipfs.Store, req contract.MintRequest) tea.Cmd {
	return func() tea.Msg {
		var err error
		if req.DocumentHash, err = pinIfLocal(docs, req.DocumentHash); err != nil {
			return txDoneMsg{action: txMint, err: err}
		}
		if req.ImageHash, err = pinIfLocal(docs, req.ImageHash); err != nil {
			return txDoneMsg{action: txMint, err: err}
		}
		_, err = svc.Mint(context.Background(), req)
		return txDoneMsg{action: txMint, err: err}
	}
}

// pinIfLocal replaces a path to an existing local file with its CID.
func pinIfLocal(docs *ipfs.Store, ref string) (string, error) {
	if ref == "" {
		return ref, nil
	}
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return ref, nil
	}
	cid, err := docs.AddFile(ref)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", ref, err)
	}
	return cid, nil
}

// addAdmin resolves ENS names before granting the role
func addAdmin(svc estateService, resolver bind.ContractBackend, input string) tea.Cmd {
	return func() tea.Msg {
		addr, err := helpers.ResolveAddress(resolver, input)
		if err != nil {
			return txDoneMsg{action: txAddAdmin, err: err}
		}
		_, err = svc.AddAdmin(context.Background(), addr)
		return txDoneMsg{action: txAddAdmin, account: addr, err: err}
	}
}

func removeAdmin(svc estateService, addr common.Address) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.RemoveAdmin(context.Background(), addr)
		return txDoneMsg{action: txRemoveAdmin, account: addr, err: err}
	}
}

func exchangeHouses(svc estateService, houses []*big.Int, target contract.PropertyType) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.ExchangeHouses(context.Background(), houses, target)
		return txDoneMsg{action: txExchange, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearCopied waits 2 seconds then clears clipboard feedback
func clearCopied() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// generateQRCode renders text as a half-block QR code
func generateQRCode(text string) string {
	var buf bytes.Buffer
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

// -------------------- MODEL HELPERS --------------------

// notify replaces the banner and schedules its expiry. An older timer never
// clears a newer notification.
func (m *model) notify(level noteLevel, text string) tea.Cmd {
	n := &notification{id: uuid.New(), level: level, text: text}
	m.notice = n
	return tea.Tick(m.cfg.NotifyTimeout, func(time.Time) tea.Msg {
		return notifyExpiredMsg{id: n.id}
	})
}

// failure logs err and shows the message for its kind.
func (m *model) failure(action string, err error) tea.Cmd {
	m.addLog("error", fmt.Sprintf("%s: %v", action, err))
	switch contract.KindOf(err) {
	case contract.KindRequestPending:
		return m.notify(noteWarn, "A wallet request is already pending. Check your wallet.")
	case contract.KindWalletUnavailable:
		return m.notify(noteFailure, "No wallet available.")
	case contract.KindUnauthorized:
		return m.notify(noteFailure, "Wallet authorization was rejected.")
	case contract.KindNoContract:
		return m.notify(noteFailure, "Contract not available at "+m.contractAddr.Hex()+".")
	case contract.KindReverted:
		return m.notify(noteFailure, "Failed to complete "+action+": the transaction reverted.")
	}
	return m.notify(noteFailure, "Failed to complete "+action+".")
}

// connectFailure maps wallet errors, which arrive unwrapped.
func (m *model) connectFailure(err error) tea.Cmd {
	m.addLog("error", "connect: "+err.Error())
	switch {
	case errors.Is(err, wallet.ErrRequestPending):
		return m.notify(noteWarn, "A wallet connection request is already pending. Check your wallet.")
	case errors.Is(err, wallet.ErrNoWallet):
		return m.notify(noteFailure, "No wallet found. Configure a wallet endpoint, keystore or key.")
	case errors.Is(err, wallet.ErrRejected):
		return m.notify(noteFailure, "Wallet connection was rejected.")
	}
	return m.notify(noteFailure, "Failed to connect wallet.")
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logs == nil {
		return
	}

	m.logViewport.SetContent(m.logs.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}

// textInputActive returns true if any text input is currently active
func (m model) textInputActive() bool {
	return m.form != nil
}

// refreshView re-queries the data behind the current view.
func (m *model) refreshView() tea.Cmd {
	if m.session == nil {
		return nil
	}
	svc := m.session.estate
	switch m.session.view {
	case viewProperties:
		m.props.loading = true
		if m.props.query != nil {
			return m.props.query
		}
		m.props.filter = ""
		return loadAvailable(svc)
	case viewAccount:
		m.mine.loading = true
		return tea.Batch(
			loadMine(svc, m.session.account),
			loadBalance(m.chain, m.session.account, m.cfg.QueryTimeout),
		)
	case viewAdmin:
		m.admins.loading = true
		return loadAdmins(svc)
	case viewTransactions:
		m.history.loading = true
		return loadHistory(svc)
	}
	return nil
}
