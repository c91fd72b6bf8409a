package main

import (
	"context"
	"math/big"

	"estate-dapp-tui/config"
	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/rpc"
	"estate-dapp-tui/styles"
	"estate-dapp-tui/views/details"
	"estate-dapp-tui/views/properties"
	"estate-dapp-tui/views/transactions"
	"estate-dapp-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
)

// -------------------- MODEL --------------------

// viewKind is the view shown once a wallet is connected.
type viewKind int

const (
	viewProperties viewKind = iota
	viewAccount
	viewAdmin
	viewTransactions
)

var allViews = []viewKind{viewProperties, viewAccount, viewAdmin, viewTransactions}

func (v viewKind) String() string {
	switch v {
	case viewProperties:
		return "Properties"
	case viewAccount:
		return "My Account"
	case viewAdmin:
		return "Admin"
	case viewTransactions:
		return "Transactions"
	}
	return "unknown"
}

// estateService is the slice of the contract client the views call.
type estateService interface {
	AvailableProperties(ctx context.Context) ([]contract.Property, error)
	MyProperties(ctx context.Context) ([]contract.Property, error)
	Property(ctx context.Context, tokenID *big.Int) (contract.Property, error)
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	SearchByType(ctx context.Context, t contract.PropertyType) ([]contract.Property, error)
	FilterByValue(ctx context.Context, min, max *big.Int) ([]contract.Property, error)
	TransactionHistory(ctx context.Context) ([]contract.Transfer, error)
	Admins(ctx context.Context) ([]common.Address, error)
	IsAdmin(ctx context.Context, account common.Address) (bool, error)
	PropertiesCount(ctx context.Context, owner common.Address) (*big.Int, error)

	Mint(ctx context.Context, req contract.MintRequest) (*types.Receipt, error)
	AddAdmin(ctx context.Context, account common.Address) (*types.Receipt, error)
	RemoveAdmin(ctx context.Context, account common.Address) (*types.Receipt, error)
	Purchase(ctx context.Context, tokenID, value *big.Int) (*types.Receipt, error)
	ToggleSale(ctx context.Context, p contract.Property) (*types.Receipt, error)
	ExchangeHouses(ctx context.Context, houses []*big.Int, target contract.PropertyType) (*types.Receipt, error)
}

// session exists only after a successful wallet connection. The signer and
// account never change for the lifetime of the program.
type session struct {
	signer  wallet.Signer
	account common.Address
	isAdmin bool
	estate  estateService
	view    viewKind
}

type noteLevel int

const (
	noteSuccess noteLevel = iota
	noteFailure
	noteWarn
)

// notification is a transient banner; id ties it to its expiry tick.
type notification struct {
	id    uuid.UUID
	level noteLevel
	text  string
}

type propertyList struct {
	items   []contract.Property
	table   table.Model
	loading bool
	filter  string
	// active search or filter; nil lists everything available
	query tea.Cmd
}

type accountState struct {
	propertyList
	count   *big.Int
	balance *rpc.Balance
}

type adminState struct {
	items   []common.Address
	cursor  int
	loading bool
}

type historyState struct {
	items   []contract.Transfer
	table   table.Model
	loading bool
}

type detailsState struct {
	open     bool
	property contract.Property
	// zero until ownerOf answers
	owner   common.Address
	loading bool
	doc      details.Document
	qr       string
}

// deps are the collaborators wired in main.
type deps struct {
	cfg          config.Config
	configPath   string
	contractAddr common.Address
	walletSource string
	connect      contract.Connector
	bindSigner   func(wallet.Signer) estateService
	resolver     bind.ContractBackend
	chain        rpc.BalanceReader
	docs         *ipfs.Store
	logs         *logBuffer
	logger       *log.Logger
}

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	cfg          config.Config
	configPath   string
	money        helpers.Money
	contractAddr common.Address
	walletSource string

	connect    contract.Connector
	bindSigner func(wallet.Signer) estateService
	resolver   bind.ContractBackend
	chain      rpc.BalanceReader
	docs       *ipfs.Store

	// nil until the wallet connects
	session    *session
	connecting bool

	spin spinner.Model

	props   propertyList
	mine    accountState
	admins  adminState
	history historyState
	details detailsState

	// active huh form and its draft
	form      *huh.Form
	formKind  formKind
	mintDraft *mintDraft
	adminAddr *string
	search    *searchDraft
	filter    *filterDraft
	exchange  *exchangeDraft

	// remove-admin confirmation dialog
	showRemoveDialog  bool
	removeTarget      common.Address
	removeYesSelected bool

	// label of the transaction awaiting confirmation
	pendingTx string

	notice *notification

	// clipboard feedback
	copiedMsg string

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logs        *logBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.TableStyles())
	return t
}

// newModel creates the initial, unauthenticated model.
func newModel(d deps) model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 10)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	logs := d.logs
	if logs == nil {
		logs = &logBuffer{}
	}
	logger := d.logger
	if logger == nil {
		logger = newLogger(logs)
	}

	return model{
		cfg:          d.cfg,
		configPath:   d.configPath,
		money:        helpers.Money{Decimals: d.cfg.Decimals, Precision: d.cfg.Precision, Symbol: d.cfg.Symbol},
		contractAddr: d.contractAddr,
		walletSource: d.walletSource,
		connect:      d.connect,
		bindSigner:   d.bindSigner,
		resolver:     d.resolver,
		chain:        d.chain,
		docs:         d.docs,
		spin:         sp,
		props:        propertyList{table: newTable(properties.Columns(80))},
		mine:         accountState{propertyList: propertyList{table: newTable(properties.Columns(80))}},
		history:      historyState{table: newTable(transactions.Columns(80))},
		logEnabled:   d.cfg.Logger,
		logger:       logger,
		logs:         logs,
		logViewport:  vp,
		logSpinner:   logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	return tea.Batch(cmds...)
}

// visibleViews lists the views the session may navigate to.
func (m model) visibleViews() []viewKind {
	var out []viewKind
	for _, v := range allViews {
		if v == viewAdmin && (m.session == nil || !m.session.isAdmin) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// selectedProperty returns the highlighted row of the current list view.
func (m model) selectedProperty() (contract.Property, bool) {
	if m.session == nil {
		return contract.Property{}, false
	}
	var list propertyList
	switch m.session.view {
	case viewProperties:
		list = m.props
	case viewAccount:
		list = m.mine.propertyList
	case viewAdmin, viewTransactions:
		return contract.Property{}, false
	}
	i := list.table.Cursor()
	if i < 0 || i >= len(list.items) {
		return contract.Property{}, false
	}
	return list.items[i], true
}

// purchasable returns the property the purchase action applies to. The
// action is only offered for properties flagged for sale.
func (m model) purchasable() (contract.Property, bool) {
	p, ok := m.selectedProperty()
	if m.details.open {
		p, ok = m.details.property, true
	}
	if !ok || !p.ForSale {
		return contract.Property{}, false
	}
	return p, true
}
