package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"estate-dapp-tui/contract"
	"estate-dapp-tui/helpers"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
)

// -------------------- FORMS --------------------

type formKind int

const (
	formNone formKind = iota
	formMint
	formAddAdmin
	formSearch
	formFilter
	formExchange
)

func (k formKind) String() string {
	switch k {
	case formNone:
		return "none"
	case formMint:
		return "mint"
	case formAddAdmin:
		return "add admin"
	case formSearch:
		return "search"
	case formFilter:
		return "filter"
	case formExchange:
		return "exchange"
	}
	return "unknown"
}

var validate = validator.New()

// mintDraft holds the mint form fields as typed.
type mintDraft struct {
	Type     contract.PropertyType
	Name     string `validate:"required,max=64"`
	Location string `validate:"required,max=128"`
	Value    string `validate:"required"`
	// IPFS hash, or a local file to upload first
	Document string `validate:"required"`
	Image    string
}

// request converts the draft into a mint request. Document and image
// references are passed through untouched.
func (d mintDraft) request(money helpers.Money) (contract.MintRequest, error) {
	if err := validate.Struct(d); err != nil {
		return contract.MintRequest{}, err
	}
	if !d.Type.Valid() {
		return contract.MintRequest{}, fmt.Errorf("unknown property type %d", d.Type)
	}
	value, err := money.Parse(d.Value)
	if err != nil {
		return contract.MintRequest{}, err
	}
	return contract.MintRequest{
		Type:         d.Type,
		Name:         strings.TrimSpace(d.Name),
		Location:     strings.TrimSpace(d.Location),
		Value:        value,
		DocumentHash: strings.TrimSpace(d.Document),
		ImageHash:    strings.TrimSpace(d.Image),
	}, nil
}

type searchDraft struct {
	Type contract.PropertyType
}

// filterDraft is a value range in display units. An empty minimum means zero.
type filterDraft struct {
	Min string
	Max string `validate:"required"`
}

var errInvertedRange = errors.New("minimum value is greater than maximum")

// bounds converts the range into base units.
func (d filterDraft) bounds(money helpers.Money) (*big.Int, *big.Int, error) {
	if err := validate.Struct(d); err != nil {
		return nil, nil, err
	}
	lo := big.NewInt(0)
	if strings.TrimSpace(d.Min) != "" {
		v, err := money.Parse(d.Min)
		if err != nil {
			return nil, nil, err
		}
		lo = v
	}
	hi, err := money.Parse(d.Max)
	if err != nil {
		return nil, nil, err
	}
	if lo.Cmp(hi) > 0 {
		return nil, nil, errInvertedRange
	}
	return lo, hi, nil
}

func (d filterDraft) label() string {
	lo := strings.TrimSpace(d.Min)
	if lo == "" {
		lo = "0"
	}
	return fmt.Sprintf("value %s – %s", lo, strings.TrimSpace(d.Max))
}

// exchangeDraft trades owned houses for a property of another type.
type exchangeDraft struct {
	Houses []string `validate:"min=1,dive,numeric"`
	Target contract.PropertyType
}

func (d exchangeDraft) tokenIDs() ([]*big.Int, error) {
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	ids := make([]*big.Int, 0, len(d.Houses))
	for _, h := range d.Houses {
		id, ok := new(big.Int).SetString(h, 10)
		if !ok {
			return nil, fmt.Errorf("invalid token id %q", h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func typeOptions(types ...contract.PropertyType) []huh.Option[contract.PropertyType] {
	opts := make([]huh.Option[contract.PropertyType], 0, len(types))
	for _, t := range types {
		opts = append(opts, huh.NewOption(t.String(), t))
	}
	return opts
}

func amountValidator(money helpers.Money, optional bool) func(string) error {
	return func(s string) error {
		if optional && strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := money.Parse(s)
		return err
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// openForm installs f as the active form.
func (m *model) openForm(kind formKind, f *huh.Form) {
	m.form = f.WithTheme(huh.ThemeCatppuccin())
	m.formKind = kind
	m.form.Init()
}

func (m *model) closeForm() {
	m.form = nil
	m.formKind = formNone
	m.mintDraft = nil
	m.adminAddr = nil
	m.search = nil
	m.filter = nil
	m.exchange = nil
}

func (m *model) openMintForm() {
	m.mintDraft = &mintDraft{Type: contract.House}
	d := m.mintDraft
	m.openForm(formMint, huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[contract.PropertyType]().
				Title("Type").
				Options(typeOptions(contract.PropertyTypes...)...).
				Value(&d.Type),
			huh.NewInput().
				Title("Name").
				Value(&d.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Location").
				Value(&d.Location).
				Validate(required("location")),
			huh.NewInput().
				Title("Value ("+m.money.Symbol+")").
				Placeholder("1.5").
				Value(&d.Value).
				Validate(amountValidator(m.money, false)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Document").
				Description("IPFS hash, or path to a local file to upload").
				Value(&d.Document).
				Validate(required("document")),
			huh.NewInput().
				Title("Image").
				Description("optional").
				Value(&d.Image),
		),
	))
}

func (m *model) openAddAdminForm() {
	var addr string
	m.adminAddr = &addr
	m.openForm(formAddAdmin, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New admin").
				Placeholder("0x… or name.eth").
				Value(m.adminAddr).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if helpers.IsValidEthAddress(s) || helpers.IsENSName(s) {
						return nil
					}
					return errors.New("enter an address or an ENS name")
				}),
		),
	))
}

func (m *model) openSearchForm() {
	m.search = &searchDraft{Type: contract.House}
	m.openForm(formSearch, huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[contract.PropertyType]().
				Title("Search by type").
				Options(typeOptions(contract.PropertyTypes...)...).
				Value(&m.search.Type),
		),
	))
}

func (m *model) openFilterForm() {
	m.filter = &filterDraft{}
	m.openForm(formFilter, huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum value ("+m.money.Symbol+")").
				Placeholder("0").
				Value(&m.filter.Min).
				Validate(amountValidator(m.money, true)),
			huh.NewInput().
				Title("Maximum value ("+m.money.Symbol+")").
				Value(&m.filter.Max).
				Validate(amountValidator(m.money, false)),
		),
	))
}

// openExchangeForm offers the owned houses; false when there are none.
func (m *model) openExchangeForm() bool {
	var opts []huh.Option[string]
	for _, p := range m.mine.items {
		if p.Type != contract.House {
			continue
		}
		opts = append(opts, huh.NewOption("#"+p.TokenID.String()+" "+p.Name, p.TokenID.String()))
	}
	if len(opts) == 0 {
		return false
	}

	m.exchange = &exchangeDraft{Target: contract.Hotel}
	m.openForm(formExchange, huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Houses to exchange").
				Options(opts...).
				Value(&m.exchange.Houses).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one house")
					}
					return nil
				}),
			huh.NewSelect[contract.PropertyType]().
				Title("Receive").
				Options(typeOptions(contract.Station, contract.Hotel)...).
				Value(&m.exchange.Target),
		),
	))
	return true
}
