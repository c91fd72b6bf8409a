package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estate-dapp-tui/config"
	"estate-dapp-tui/contract"
	"estate-dapp-tui/ipfs"
	"estate-dapp-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob        = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	estateAddr = common.HexToAddress("0x00000000000000000000000000000000000000ee")
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type stubSigner struct{ addr common.Address }

func (s stubSigner) Address() common.Address { return s.addr }
func (s stubSigner) SendTransaction(context.Context, wallet.TxRequest) (common.Hash, error) {
	return common.Hash{}, nil
}

// fakeEstate records every call; failOn makes the named calls fail.
type fakeEstate struct {
	available []contract.Property
	mine      []contract.Property
	admins    []common.Address
	history   []contract.Transfer
	isAdmin   bool
	owners    map[string]common.Address
	failOn    map[string]error

	calls     map[string]int
	purchases []string
	added     []common.Address
	removed   []common.Address
	filtered  [][2]*big.Int
	minted    []contract.MintRequest
	toggled   []contract.Property
	exchanged [][]*big.Int
}

func newFakeEstate() *fakeEstate {
	return &fakeEstate{calls: map[string]int{}, failOn: map[string]error{}}
}

func (f *fakeEstate) hit(op string) error {
	f.calls[op]++
	if err, ok := f.failOn[op]; ok {
		return &contract.Error{Kind: contract.KindCallFailed, Op: op, Err: err}
	}
	return nil
}

func (f *fakeEstate) AvailableProperties(context.Context) ([]contract.Property, error) {
	if err := f.hit("AvailableProperties"); err != nil {
		return nil, err
	}
	return f.available, nil
}

func (f *fakeEstate) MyProperties(context.Context) ([]contract.Property, error) {
	if err := f.hit("MyProperties"); err != nil {
		return nil, err
	}
	return f.mine, nil
}

func (f *fakeEstate) Property(_ context.Context, id *big.Int) (contract.Property, error) {
	if err := f.hit("Property"); err != nil {
		return contract.Property{}, err
	}
	for _, p := range append(f.available, f.mine...) {
		if p.TokenID.Cmp(id) == 0 {
			return p, nil
		}
	}
	return contract.Property{}, errors.New("not found")
}

func (f *fakeEstate) OwnerOf(_ context.Context, id *big.Int) (common.Address, error) {
	if err := f.hit("OwnerOf"); err != nil {
		return common.Address{}, err
	}
	owner, ok := f.owners[id.String()]
	if !ok {
		return common.Address{}, errors.New("execution reverted: nonexistent token")
	}
	return owner, nil
}

func (f *fakeEstate) SearchByType(_ context.Context, t contract.PropertyType) ([]contract.Property, error) {
	if err := f.hit("SearchByType"); err != nil {
		return nil, err
	}
	var out []contract.Property
	for _, p := range f.available {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeEstate) FilterByValue(_ context.Context, min, max *big.Int) ([]contract.Property, error) {
	if err := f.hit("FilterByValue"); err != nil {
		return nil, err
	}
	f.filtered = append(f.filtered, [2]*big.Int{min, max})
	return nil, nil
}

func (f *fakeEstate) TransactionHistory(context.Context) ([]contract.Transfer, error) {
	if err := f.hit("TransactionHistory"); err != nil {
		return nil, err
	}
	return f.history, nil
}

func (f *fakeEstate) Admins(context.Context) ([]common.Address, error) {
	if err := f.hit("Admins"); err != nil {
		return nil, err
	}
	return f.admins, nil
}

func (f *fakeEstate) IsAdmin(context.Context, common.Address) (bool, error) {
	if err := f.hit("IsAdmin"); err != nil {
		return false, err
	}
	return f.isAdmin, nil
}

func (f *fakeEstate) PropertiesCount(context.Context, common.Address) (*big.Int, error) {
	if err := f.hit("PropertiesCount"); err != nil {
		return nil, err
	}
	return big.NewInt(int64(len(f.mine))), nil
}

func (f *fakeEstate) Mint(_ context.Context, req contract.MintRequest) (*types.Receipt, error) {
	if err := f.hit("Mint"); err != nil {
		return nil, err
	}
	f.minted = append(f.minted, req)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeEstate) AddAdmin(_ context.Context, a common.Address) (*types.Receipt, error) {
	if err := f.hit("AddAdmin"); err != nil {
		return nil, err
	}
	f.added = append(f.added, a)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeEstate) RemoveAdmin(_ context.Context, a common.Address) (*types.Receipt, error) {
	if err := f.hit("RemoveAdmin"); err != nil {
		return nil, err
	}
	f.removed = append(f.removed, a)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeEstate) Purchase(_ context.Context, id, value *big.Int) (*types.Receipt, error) {
	if err := f.hit("Purchase"); err != nil {
		return nil, err
	}
	f.purchases = append(f.purchases, fmt.Sprintf("%s:%s", id, value))
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeEstate) ToggleSale(_ context.Context, p contract.Property) (*types.Receipt, error) {
	if err := f.hit("ToggleSale"); err != nil {
		return nil, err
	}
	f.toggled = append(f.toggled, p)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeEstate) ExchangeHouses(_ context.Context, houses []*big.Int, _ contract.PropertyType) (*types.Receipt, error) {
	if err := f.hit("ExchangeHouses"); err != nil {
		return nil, err
	}
	f.exchanged = append(f.exchanged, houses)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func property(id int64, t contract.PropertyType, value int64, forSale bool) contract.Property {
	return contract.Property{
		TokenID:        big.NewInt(id),
		Type:           t,
		Name:           fmt.Sprintf("Property %d", id),
		Location:       "Lisbon",
		Value:          ether(value),
		PreviousOwners: []common.Address{bob},
		ForSale:        forSale,
	}
}

func newTestModel(t *testing.T, svc *fakeEstate, connect contract.Connector) *model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.NotifyTimeout = time.Millisecond
	m := newModel(deps{
		cfg:          cfg,
		contractAddr: estateAddr,
		walletSource: "test wallet",
		connect:      connect,
		bindSigner:   func(wallet.Signer) estateService { return svc },
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m
}

func connectAs(addr common.Address) contract.Connector {
	return func(context.Context) (wallet.Signer, error) {
		return stubSigner{addr: addr}, nil
	}
}

// drain runs cmd and every command it leads to, feeding messages back into
// m. Timers that would loop or clear state are dropped.
func drain(m *model, cmd tea.Cmd) {
	var run func(tea.Cmd, int)
	run = func(cmd tea.Cmd, depth int) {
		if cmd == nil || depth > 32 {
			return
		}
		switch msg := cmd().(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range msg {
				run(c, depth+1)
			}
		case spinner.TickMsg, notifyExpiredMsg, clearCopiedMsg:
		default:
			_, next := m.Update(msg)
			run(next, depth+1)
		}
	}
	run(cmd, 0)
}

func press(m *model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	drain(m, cmd)
}

func connected(t *testing.T, svc *fakeEstate) *model {
	t.Helper()
	m := newTestModel(t, svc, connectAs(alice))
	press(m, "enter")
	require.NotNil(t, m.session)
	return m
}

func TestStartsUnauthenticated(t *testing.T) {
	m := newTestModel(t, newFakeEstate(), connectAs(alice))
	assert.Nil(t, m.session)
	assert.Contains(t, m.View(), "connect your wallet")

	// view keys do nothing before login
	press(m, "2")
	assert.Nil(t, m.session)
}

func TestConnectOpensSession(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{property(1, contract.House, 2, true)}
	svc.isAdmin = true

	m := connected(t, svc)

	assert.Equal(t, alice, m.session.account)
	assert.True(t, m.session.isAdmin)
	assert.Equal(t, viewProperties, m.session.view)
	assert.False(t, m.connecting)
	assert.Len(t, m.props.items, 1)
	assert.Equal(t, 1, svc.calls["IsAdmin"])
	require.NotNil(t, m.notice)
	assert.Equal(t, noteSuccess, m.notice.level)
}

func TestConnectFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		level      noteLevel
		text       string
		connecting bool
	}{
		{"pending", wallet.ErrRequestPending, noteWarn, "already pending", true},
		{"rejected", wallet.ErrRejected, noteFailure, "rejected", false},
		{"no wallet", wallet.ErrNoWallet, noteFailure, "No wallet", false},
		{"other", errors.New("boom"), noteFailure, "Failed to connect", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, newFakeEstate(), func(context.Context) (wallet.Signer, error) {
				return nil, tt.err
			})
			press(m, "enter")

			assert.Nil(t, m.session)
			assert.Equal(t, tt.connecting, m.connecting)
			require.NotNil(t, m.notice)
			assert.Equal(t, tt.level, m.notice.level)
			assert.Contains(t, m.notice.text, tt.text)
		})
	}
}

func TestNoConnectorReportsNoWallet(t *testing.T) {
	m := newTestModel(t, newFakeEstate(), nil)
	press(m, "enter")
	assert.Nil(t, m.session)
	require.NotNil(t, m.notice)
	assert.Contains(t, m.notice.text, "No wallet")
}

func TestAdminViewHiddenForNonAdmins(t *testing.T) {
	svc := newFakeEstate()
	m := connected(t, svc)

	assert.Equal(t, []viewKind{viewProperties, viewAccount, viewTransactions}, m.visibleViews())
	press(m, "3")
	assert.Equal(t, viewTransactions, m.session.view)
	assert.Nil(t, m.switchView(viewAdmin))
	assert.Equal(t, viewTransactions, m.session.view)
	for _, tab := range m.headerTabs() {
		assert.NotEqual(t, "Admin", tab.Label)
	}
}

func TestViewsQueryOnMount(t *testing.T) {
	svc := newFakeEstate()
	svc.isAdmin = true
	svc.mine = []contract.Property{property(3, contract.House, 1, false)}
	svc.admins = []common.Address{alice}
	m := connected(t, svc)

	press(m, "2")
	assert.Equal(t, viewAccount, m.session.view)
	assert.Equal(t, 1, svc.calls["MyProperties"])
	assert.Equal(t, 1, svc.calls["PropertiesCount"])
	assert.Equal(t, "1", m.mine.count.String())

	press(m, "3")
	assert.Equal(t, viewAdmin, m.session.view)
	assert.Equal(t, []common.Address{alice}, m.admins.items)

	press(m, "4")
	assert.Equal(t, 1, svc.calls["TransactionHistory"])

	press(m, "tab")
	assert.Equal(t, viewProperties, m.session.view)
	assert.Equal(t, 2, svc.calls["AvailableProperties"])
}

func TestPurchaseOfferedOnlyForSale(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{
		property(1, contract.House, 2, false),
		property(2, contract.Hotel, 5, true),
	}
	m := connected(t, svc)

	_, ok := m.purchasable()
	assert.False(t, ok)
	press(m, "p")
	assert.Empty(t, svc.purchases)

	press(m, "down")
	_, ok = m.purchasable()
	assert.True(t, ok)
}

func TestPurchaseEndToEnd(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{
		property(1, contract.House, 2, false),
		property(2, contract.Hotel, 5, true),
	}
	m := connected(t, svc)
	assert.Equal(t, 1, svc.calls["IsAdmin"])
	assert.Equal(t, 1, svc.calls["AvailableProperties"])

	press(m, "down")
	press(m, "p")

	// value-bearing call with the listed value, then the list is re-fetched
	assert.Equal(t, []string{"2:" + ether(5).String()}, svc.purchases)
	assert.Equal(t, 2, svc.calls["AvailableProperties"])
	assert.Empty(t, m.pendingTx)
	require.NotNil(t, m.notice)
	assert.Equal(t, noteSuccess, m.notice.level)
	assert.Contains(t, m.notice.text, "#2 purchased")
}

func TestFailedWriteKeepsDataAndSkipsRefresh(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{property(2, contract.Hotel, 5, true)}
	m := connected(t, svc)

	svc.failOn["Purchase"] = errors.New("execution reverted")
	press(m, "p")

	assert.Equal(t, 1, svc.calls["AvailableProperties"])
	assert.Len(t, m.props.items, 1)
	require.NotNil(t, m.notice)
	assert.Equal(t, noteFailure, m.notice.level)
	assert.Equal(t, "Failed to complete purchase.", m.notice.text)
}

func TestFailedQueryKeepsPriorData(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{property(1, contract.House, 2, true)}
	m := connected(t, svc)

	svc.failOn["AvailableProperties"] = errors.New("connection refused")
	press(m, "r")

	assert.Len(t, m.props.items, 1)
	assert.False(t, m.props.loading)
	require.NotNil(t, m.notice)
	assert.Equal(t, noteFailure, m.notice.level)
}

func TestAdminSetUpdatedLocally(t *testing.T) {
	svc := newFakeEstate()
	svc.isAdmin = true
	svc.admins = []common.Address{alice}
	m := connected(t, svc)
	press(m, "3")
	require.Equal(t, 1, svc.calls["Admins"])

	m.openAddAdminForm()
	*m.adminAddr = bob.Hex()
	drain(m, m.submitForm())

	assert.Equal(t, []common.Address{bob}, svc.added)
	assert.Equal(t, []common.Address{alice, bob}, m.admins.items)

	// adding an existing admin keeps the set unchanged
	m.openAddAdminForm()
	*m.adminAddr = alice.Hex()
	drain(m, m.submitForm())
	assert.Equal(t, []common.Address{alice, bob}, m.admins.items)

	press(m, "down")
	press(m, "d")
	require.True(t, m.showRemoveDialog)
	assert.Equal(t, bob, m.removeTarget)
	press(m, "enter")

	assert.False(t, m.showRemoveDialog)
	assert.Equal(t, []common.Address{bob}, svc.removed)
	assert.Equal(t, []common.Address{alice}, m.admins.items)
	assert.Equal(t, 1, svc.calls["Admins"])
}

func TestRemoveDialogCancel(t *testing.T) {
	svc := newFakeEstate()
	svc.isAdmin = true
	svc.admins = []common.Address{alice, bob}
	m := connected(t, svc)
	press(m, "3")

	press(m, "d")
	press(m, "right")
	press(m, "enter")
	assert.False(t, m.showRemoveDialog)
	assert.Empty(t, svc.removed)

	press(m, "d")
	press(m, "esc")
	assert.False(t, m.showRemoveDialog)
	assert.Empty(t, svc.removed)
}

func TestNotificationExpiry(t *testing.T) {
	m := newTestModel(t, newFakeEstate(), nil)

	m.notify(noteSuccess, "first")
	first := m.notice.id
	m.notify(noteFailure, "second")
	second := m.notice.id

	m.Update(notifyExpiredMsg{id: first})
	require.NotNil(t, m.notice)
	assert.Equal(t, "second", m.notice.text)

	m.Update(notifyExpiredMsg{id: second})
	assert.Nil(t, m.notice)
}

func TestSearchAndFilter(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{
		property(1, contract.House, 2, true),
		property(2, contract.Hotel, 5, true),
	}
	m := connected(t, svc)

	m.openSearchForm()
	m.search.Type = contract.Hotel
	drain(m, m.submitForm())
	require.Len(t, m.props.items, 1)
	assert.Equal(t, "type Hotel", m.props.filter)

	// refresh repeats the active search
	press(m, "r")
	assert.Equal(t, 2, svc.calls["SearchByType"])

	m.openFilterForm()
	m.filter.Min = "1.5"
	m.filter.Max = "3"
	drain(m, m.submitForm())
	require.Len(t, svc.filtered, 1)
	assert.Equal(t, "1500000000000000000", svc.filtered[0][0].String())
	assert.Equal(t, ether(3).String(), svc.filtered[0][1].String())

	press(m, "x")
	assert.Empty(t, m.props.filter)
	assert.Len(t, m.props.items, 2)
}

func TestInvertedFilterIsRejected(t *testing.T) {
	m := connected(t, newFakeEstate())
	m.openFilterForm()
	m.filter.Min = "5"
	m.filter.Max = "1"
	drain(m, m.submitForm())

	require.NotNil(t, m.notice)
	assert.Equal(t, noteFailure, m.notice.level)
	assert.Nil(t, m.form)
}

func TestToggleSaleAndExchange(t *testing.T) {
	svc := newFakeEstate()
	svc.mine = []contract.Property{
		property(3, contract.House, 1, false),
		property(4, contract.House, 1, false),
	}
	m := connected(t, svc)
	press(m, "2")

	press(m, "t")
	require.Len(t, svc.toggled, 1)
	assert.Equal(t, "3", svc.toggled[0].TokenID.String())
	assert.Equal(t, 2, svc.calls["MyProperties"])

	press(m, "e")
	require.Equal(t, formExchange, m.formKind)
	m.exchange.Houses = []string{"3", "4"}
	drain(m, m.submitForm())
	require.Len(t, svc.exchanged, 1)
	assert.Len(t, svc.exchanged[0], 2)
}

func TestExchangeNeedsHouses(t *testing.T) {
	svc := newFakeEstate()
	svc.mine = []contract.Property{property(5, contract.Hotel, 9, false)}
	m := connected(t, svc)
	press(m, "2")

	press(m, "e")
	assert.Nil(t, m.form)
	require.NotNil(t, m.notice)
	assert.Equal(t, noteWarn, m.notice.level)
}

func TestMintSubmitsParsedValue(t *testing.T) {
	svc := newFakeEstate()
	svc.isAdmin = true
	m := connected(t, svc)
	press(m, "3")

	m.openMintForm()
	*m.mintDraft = mintDraft{Type: contract.Station, Name: "Central", Location: "Porto", Value: "12.5", Document: "QmDeed"}
	drain(m, m.submitForm())

	require.Len(t, svc.minted, 1)
	assert.Equal(t, contract.Station, svc.minted[0].Type)
	assert.Equal(t, "12500000000000000000", svc.minted[0].Value.String())
	assert.Equal(t, "QmDeed", svc.minted[0].DocumentHash)
}

func TestSecondWriteWaitsForPending(t *testing.T) {
	svc := newFakeEstate()
	svc.available = []contract.Property{property(2, contract.Hotel, 5, true)}
	m := connected(t, svc)

	m.pendingTx = txMint.String()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.NotNil(t, cmd)
	assert.Equal(t, noteWarn, m.notice.level)
	assert.Contains(t, m.notice.text, "pending mint")
}

func TestDetailsPanel(t *testing.T) {
	svc := newFakeEstate()
	p := property(2, contract.Hotel, 5, true)
	p.DocumentHash = "QmDeed"
	svc.available = []contract.Property{p}
	m := connected(t, svc)

	press(m, "enter")
	require.True(t, m.details.open)
	assert.Equal(t, 1, svc.calls["Property"])
	assert.Contains(t, m.View(), "Ownership history")

	press(m, "o")
	assert.NotEmpty(t, m.details.qr)
	press(m, "o")
	assert.Empty(t, m.details.qr)

	// no IPFS node configured
	press(m, "i")
	assert.Equal(t, noteWarn, m.notice.level)

	press(m, "p")
	assert.Len(t, svc.purchases, 1)

	press(m, "esc")
	assert.False(t, m.details.open)
}

func TestDetailsShowCurrentOwner(t *testing.T) {
	svc := newFakeEstate()
	p := property(2, contract.Hotel, 5, false)
	// the history records sellers; the holder is only known to ownerOf
	p.PreviousOwners = []common.Address{bob}
	svc.available = []contract.Property{p}
	svc.owners = map[string]common.Address{"2": alice}
	m := connected(t, svc)

	press(m, "enter")
	require.True(t, m.details.open)
	assert.Equal(t, 1, svc.calls["OwnerOf"])
	assert.Equal(t, alice, m.details.owner)
	assert.Contains(t, m.View(), alice.Hex())

	// a failed owner lookup still shows the record
	svc.failOn["OwnerOf"] = errors.New("connection refused")
	press(m, "r")
	assert.Equal(t, common.Address{}, m.details.owner)
	assert.Equal(t, "Property 2", m.details.property.Name)

	press(m, "c")
	require.NotNil(t, m.notice)
	assert.Equal(t, noteWarn, m.notice.level)
	assert.Contains(t, m.notice.text, "owner is not known")
}

func TestRemovingOwnAdminRights(t *testing.T) {
	svc := newFakeEstate()
	svc.isAdmin = true
	svc.admins = []common.Address{alice, bob}
	m := connected(t, svc)
	press(m, "3")
	require.Equal(t, viewAdmin, m.session.view)

	press(m, "d")
	require.Equal(t, alice, m.removeTarget)
	press(m, "enter")

	assert.Equal(t, []common.Address{alice}, svc.removed)
	assert.False(t, m.session.isAdmin)
	assert.Equal(t, viewProperties, m.session.view)
	assert.NotContains(t, m.visibleViews(), viewAdmin)
	assert.Equal(t, 2, svc.calls["AvailableProperties"])

	// the admin view stays out of reach
	press(m, "3")
	assert.Equal(t, viewTransactions, m.session.view)
}

func TestLoggerTogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	m := newTestModel(t, newFakeEstate(), nil)
	m.configPath = path

	press(m, "l")
	assert.True(t, m.logEnabled)
	assert.True(t, m.logReady)
	assert.Contains(t, m.logs.String(), "Logger enabled")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logger": true`)

	press(m, "l")
	assert.False(t, m.logEnabled)
	assert.Empty(t, m.logs.String())
}

func TestPinIfLocal(t *testing.T) {
	ref, err := pinIfLocal(nil, "QmNotAFile")
	require.NoError(t, err)
	assert.Equal(t, "QmNotAFile", ref)

	path := filepath.Join(t.TempDir(), "deed.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	_, err = pinIfLocal(nil, path)
	assert.ErrorIs(t, err, ipfs.ErrNoNode)
	assert.True(t, strings.HasPrefix(err.Error(), "upload "))
}

type closingProvider struct {
	wallet.Provider
	closed bool
}

func (p *closingProvider) Close() { p.closed = true }

func TestCloseWallet(t *testing.T) {
	p := &closingProvider{}
	closeWallet(p)
	assert.True(t, p.closed)

	assert.NotPanics(t, func() { closeWallet(nil) })

	_, source, err := openWallet(config.DefaultConfig(), config.Secrets{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "none configured", source)
}
