// Package view composes accounts, jars and rates into the ordered,
// filtered sections shown by the front ends.
package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/pin"
	"github.com/vasylcode/monobar/internal/transform"
	"github.com/vasylcode/monobar/internal/util"
	"golang.org/x/text/cases"
)

// AccountCategory selects the sections of the accounts view
type AccountCategory string

const (
	AccountsAll   AccountCategory = "all"
	AccountsCards AccountCategory = "cards"
	AccountsFOPs  AccountCategory = "fops"
	AccountsJars  AccountCategory = "jars"
)

// AccountCategories lists the categories in dropdown order
var AccountCategories = []AccountCategory{AccountsAll, AccountsCards, AccountsFOPs, AccountsJars}

// RateCategory selects the sections of the rates view
type RateCategory string

const (
	RatesAll    RateCategory = "all"
	RatesPinned RateCategory = "pinned"
)

// RateCategories lists the categories in dropdown order
var RateCategories = []RateCategory{RatesAll, RatesPinned}

// ParseAccountCategory validates a category name
func ParseAccountCategory(s string) (AccountCategory, error) {
	for _, c := range AccountCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (use all, cards, fops or jars)", s)
}

// ParseRateCategory validates a category name
func ParseRateCategory(s string) (RateCategory, error) {
	for _, c := range RateCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (use all or pinned)", s)
}

// Section titles
const (
	SectionPinned = "Pinned"
	SectionCards  = "Cards"
	SectionFOPs   = "FOPs"
	SectionJars   = "Jars"
	SectionRates  = "Rates"
)

// ItemKind tells which model an item wraps
type ItemKind int

const (
	KindAccount ItemKind = iota
	KindJar
	KindRate
)

// Item is one row of a section
type Item struct {
	ID        string
	Kind      ItemKind
	Title     string
	Subtitle  string
	Accessory string
	Tag       string
	Pinned    bool

	Account *model.Account
	Jar     *model.Jar
	Rate    *model.CurrencyRate
}

// Section is a titled group of items
type Section struct {
	Title string
	Items []Item
}

// AccountsInput is everything the accounts view is computed from
type AccountsInput struct {
	Accounts []model.Account
	Jars     []model.Jar
	Rates    []model.CurrencyRate
	Pinned   []string
	Category AccountCategory
	Search   string
	Home     model.Currency
}

// AccountsView is the computed accounts view
type AccountsView struct {
	Sections []Section
	Total    decimal.Decimal
	Home     model.Currency
}

// Accounts builds the accounts view. Pinned items get their own section in
// the "all" category and are left out of the other sections there; any other
// category lists every matching item of its kind.
func Accounts(in AccountsInput) AccountsView {
	if in.Category == "" {
		in.Category = AccountsAll
	}
	m := newMatcher(in.Search)

	byID := make(map[string]Item)
	var cards, fops, jars []Item
	for i := range in.Accounts {
		a := &in.Accounts[i]
		item := AccountItem(a, pin.Contains(in.Pinned, a.ID))
		byID[item.ID] = item
		if !matchItem(m, item) {
			continue
		}
		if a.Type.IsCard() {
			cards = append(cards, item)
		} else {
			fops = append(fops, item)
		}
	}
	for i := range in.Jars {
		j := &in.Jars[i]
		item := JarItem(j, pin.Contains(in.Pinned, j.ID))
		byID[item.ID] = item
		if !matchItem(m, item) {
			continue
		}
		jars = append(jars, item)
	}

	v := AccountsView{
		Total: util.CalculateTotal(append(util.Accounts(in.Accounts), util.Jars(in.Jars)...), in.Rates, in.Home),
		Home:  in.Home,
	}

	switch in.Category {
	case AccountsCards:
		v.Sections = appendSection(v.Sections, SectionCards, cards)
	case AccountsFOPs:
		v.Sections = appendSection(v.Sections, SectionFOPs, fops)
	case AccountsJars:
		v.Sections = appendSection(v.Sections, SectionJars, jars)
	default:
		var pinned []Item
		for _, id := range in.Pinned {
			item, ok := byID[id]
			if !ok || !matchItem(m, item) {
				continue
			}
			pinned = append(pinned, item)
		}
		v.Sections = appendSection(v.Sections, SectionPinned, pinned)
		v.Sections = appendSection(v.Sections, SectionCards, unpinned(cards))
		v.Sections = appendSection(v.Sections, SectionFOPs, unpinned(fops))
		v.Sections = appendSection(v.Sections, SectionJars, unpinned(jars))
	}
	return v
}

// RatesInput is everything the rates view is computed from
type RatesInput struct {
	Rates    []model.CurrencyRate
	Pinned   []string
	Category RateCategory
	Search   string
}

// Rates builds the rates view: pinned rates in pinned order, then the rest
// in API order. The "pinned" category shows only the pinned section.
func Rates(in RatesInput) []Section {
	m := newMatcher(in.Search)

	byID := make(map[string]Item)
	var rest []Item
	for i := range in.Rates {
		r := &in.Rates[i]
		item := RateItem(r, pin.Contains(in.Pinned, r.ID))
		byID[item.ID] = item
		if !item.Pinned && matchItem(m, item) {
			rest = append(rest, item)
		}
	}

	var pinned []Item
	for _, id := range in.Pinned {
		item, ok := byID[id]
		if ok && matchItem(m, item) {
			pinned = append(pinned, item)
		}
	}

	var sections []Section
	sections = appendSection(sections, SectionPinned, pinned)
	if in.Category != RatesPinned {
		sections = appendSection(sections, SectionRates, rest)
	}
	return sections
}

// ErrNotFound is returned when no item carries the requested id
var ErrNotFound = errors.New("item not found")

// Find returns the item with id across sections
func Find(sections []Section, id string) (Item, bool) {
	for _, s := range sections {
		for _, item := range s.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return Item{}, false
}

func appendSection(sections []Section, title string, items []Item) []Section {
	if len(items) == 0 {
		return sections
	}
	return append(sections, Section{Title: title, Items: items})
}

func unpinned(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Pinned {
			out = append(out, item)
		}
	}
	return out
}

// matcher is a case-insensitive substring test
type matcher struct {
	query  string
	folder cases.Caser
}

func newMatcher(query string) *matcher {
	m := &matcher{folder: cases.Fold()}
	m.query = m.folder.String(strings.TrimSpace(query))
	return m
}

func (m *matcher) match(fields ...string) bool {
	if m.query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.folder.String(f), m.query) {
			return true
		}
	}
	return false
}

func matchItem(m *matcher, item Item) bool {
	switch item.Kind {
	case KindAccount:
		a := item.Account
		return m.match(a.Currency.Code, string(a.Type), transform.PanOrIBAN(*a))
	case KindJar:
		return m.match(item.Jar.Currency.Code, item.Jar.Title)
	case KindRate:
		r := item.Rate
		return m.match(r.CurrencyA.Code, r.CurrencyB.Code, r.CurrencyA.Name, r.CurrencyB.Name)
	}
	return false
}
