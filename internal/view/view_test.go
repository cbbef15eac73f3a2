package view

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/currency"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/transform"
)

func fixture() ([]model.Account, []model.Jar, []model.CurrencyRate) {
	goal := int64(200000)
	accounts := transform.Accounts([]model.AccountResponse{
		{ID: "black", Type: model.AccountTypeBlack, CurrencyCode: 980, Balance: 150000, MaskedPan: []string{"537541******1111"}, IBAN: "UA11", SendID: "sb"},
		{ID: "usd", Type: model.AccountTypeWhite, CurrencyCode: 840, Balance: 10000, MaskedPan: []string{"444111******2222"}, IBAN: "UA22"},
		{ID: "fop", Type: model.AccountTypeFOP, CurrencyCode: 980, Balance: 500000, IBAN: "UA33FOP"},
	})
	jars := transform.Jars([]model.JarResponse{
		{ID: "jar1", Title: "Holidays", CurrencyCode: 980, Balance: 50000, Goal: &goal, SendID: "jar/abc"},
		{ID: "jar2", Title: "Bike", CurrencyCode: 978, Balance: 1000},
	})
	rates := transform.Rates([]model.RateResponse{
		{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: decimal.RequireFromString("40"), RateSell: decimal.RequireFromString("41")},
		{CurrencyCodeA: 978, CurrencyCodeB: 980, RateBuy: decimal.RequireFromString("44"), RateSell: decimal.RequireFromString("45")},
		{CurrencyCodeA: 985, CurrencyCodeB: 980, RateCross: decimal.NewNullDecimal(decimal.RequireFromString("10.5"))},
	})
	return accounts, jars, rates
}

func sectionIDs(sections []Section) map[string][]string {
	out := make(map[string][]string)
	for _, s := range sections {
		for _, item := range s.Items {
			out[s.Title] = append(out[s.Title], item.ID)
		}
	}
	return out
}

func home(t *testing.T) model.Currency {
	t.Helper()
	c, err := currency.Resolve(980)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAccounts_AllExcludesPinnedFromOtherSections(t *testing.T) {
	accounts, jars, rates := fixture()

	v := Accounts(AccountsInput{
		Accounts: accounts,
		Jars:     jars,
		Rates:    rates,
		Pinned:   []string{"jar2", "black"},
		Category: AccountsAll,
		Home:     home(t),
	})

	want := map[string][]string{
		SectionPinned: {"jar2", "black"},
		SectionCards:  {"usd"},
		SectionFOPs:   {"fop"},
		SectionJars:   {"jar1"},
	}
	if got := sectionIDs(v.Sections); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if v.Sections[0].Title != SectionPinned {
		t.Errorf("Expected pinned section first, got %s", v.Sections[0].Title)
	}

	// 1500 + 100*41 + 5000 + 500 + 10*45
	if !v.Total.Equal(decimal.NewFromInt(11550)) {
		t.Errorf("Expected total 11550, got %s", v.Total)
	}
}

func TestAccounts_CategoryIncludesPinned(t *testing.T) {
	accounts, jars, rates := fixture()

	v := Accounts(AccountsInput{
		Accounts: accounts,
		Jars:     jars,
		Rates:    rates,
		Pinned:   []string{"black"},
		Category: AccountsCards,
		Home:     home(t),
	})

	want := map[string][]string{SectionCards: {"black", "usd"}}
	if got := sectionIDs(v.Sections); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !v.Sections[0].Items[0].Pinned {
		t.Error("Expected the pinned flag to be kept")
	}
}

func TestAccounts_Search(t *testing.T) {
	accounts, jars, rates := fixture()

	tests := []struct {
		search string
		want   map[string][]string
	}{
		{"usd", map[string][]string{SectionCards: {"usd"}}},
		{"FOP", map[string][]string{SectionFOPs: {"fop"}}},
		{"ua33", map[string][]string{SectionFOPs: {"fop"}}},
		{"2222", map[string][]string{SectionCards: {"usd"}}},
		{"holi", map[string][]string{SectionJars: {"jar1"}}},
		{"eur", map[string][]string{SectionPinned: {"jar2"}}},
		{"nothing", map[string][]string{}},
	}

	for _, tt := range tests {
		v := Accounts(AccountsInput{
			Accounts: accounts,
			Jars:     jars,
			Rates:    rates,
			Pinned:   []string{"jar2"},
			Search:   tt.search,
			Home:     home(t),
		})
		if got := sectionIDs(v.Sections); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("search %q: expected %v, got %v", tt.search, tt.want, got)
		}
	}
}

func TestAccounts_UnknownPinnedIDIgnored(t *testing.T) {
	accounts, jars, _ := fixture()
	v := Accounts(AccountsInput{Accounts: accounts, Jars: jars, Pinned: []string{"gone"}, Home: home(t)})
	if _, ok := sectionIDs(v.Sections)[SectionPinned]; ok {
		t.Error("Expected no pinned section for an unknown id")
	}
}

func TestRates(t *testing.T) {
	_, _, rates := fixture()

	all := Rates(RatesInput{Rates: rates, Pinned: []string{"985-980"}, Category: RatesAll})
	want := map[string][]string{
		SectionPinned: {"985-980"},
		SectionRates:  {"840-980", "978-980"},
	}
	if got := sectionIDs(all); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	pinned := Rates(RatesInput{Rates: rates, Pinned: []string{"978-980", "840-980"}, Category: RatesPinned})
	want = map[string][]string{SectionPinned: {"978-980", "840-980"}}
	if got := sectionIDs(pinned); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	search := Rates(RatesInput{Rates: rates, Search: "zloty"})
	want = map[string][]string{SectionRates: {"985-980"}}
	if got := sectionIDs(search); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestItems(t *testing.T) {
	accounts, jars, rates := fixture()

	black := AccountItem(&accounts[0], false)
	if black.Title != "🇺🇦 UAH, black" || black.Subtitle != "1500.00" || black.Accessory != "537541******1111" {
		t.Errorf("Unexpected account item %+v", black)
	}
	if !CanTopUp(black) || TopUpURL(SendID(black)) != "https://send.monobank.ua/sb" {
		t.Error("Expected UAH account with send id to have a top-up page")
	}
	if v, ok := CopyValue(black); !ok || v != "UA11" {
		t.Errorf("Expected IBAN copy value, got %q", v)
	}

	usd := AccountItem(&accounts[1], false)
	if CanTopUp(usd) {
		t.Error("Expected no top-up page for a USD account")
	}

	holidays := JarItem(&jars[0], false)
	if holidays.Subtitle != "500.00 / 2000.00" || holidays.Accessory != "25%" {
		t.Errorf("Unexpected jar item %+v", holidays)
	}
	if v, _ := CopyValue(holidays); v != "https://send.monobank.ua/jar/abc" {
		t.Errorf("Unexpected jar copy value %q", v)
	}

	bike := JarItem(&jars[1], false)
	if bike.Accessory != "No goal" || bike.Subtitle != "10.00" || CanTopUp(bike) {
		t.Errorf("Unexpected jar item %+v", bike)
	}

	usdRate := RateItem(&rates[0], false)
	if usdRate.Subtitle != "40.00 / 41.00" || usdRate.Title != "🇺🇸 USD - 🇺🇦 UAH" {
		t.Errorf("Unexpected rate item %+v", usdRate)
	}
	pln := RateItem(&rates[2], false)
	if pln.Subtitle != "10.50" || RateValue(*pln.Rate) != "10.5" {
		t.Errorf("Unexpected cross rate item %+v", pln)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseAccountCategory("Jars"); err != nil || c != AccountsJars {
		t.Errorf("Unexpected result %v %v", c, err)
	}
	if _, err := ParseAccountCategory("pinned"); err == nil {
		t.Error("Expected error for an account category that does not exist")
	}
	if c, err := ParseRateCategory("PINNED"); err != nil || c != RatesPinned {
		t.Errorf("Unexpected result %v %v", c, err)
	}
}
