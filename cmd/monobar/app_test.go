package monobar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/action"
	"github.com/vasylcode/monobar/internal/currency"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/storage"
	"github.com/vasylcode/monobar/internal/transform"
	"github.com/vasylcode/monobar/internal/view"
)

func testFetchers() fetchers {
	goal := int64(100000)
	return fetchers{
		accounts: func(ctx context.Context) (accountsData, error) {
			return accountsData{
				Accounts: transform.Accounts([]model.AccountResponse{
					{ID: "acc-uah", Type: model.AccountTypeBlack, CurrencyCode: 980, Balance: 10000, IBAN: "UA01", SendID: "send1", MaskedPan: []string{"537541******0001"}},
					{ID: "acc-usd", Type: model.AccountTypeWhite, CurrencyCode: 840, Balance: 500, IBAN: "UA02"},
				}),
				Jars: transform.Jars([]model.JarResponse{
					{ID: "jar-1", Title: "Trip", CurrencyCode: 980, Balance: 2500, Goal: &goal, SendID: "jar/x"},
				}),
			}, nil
		},
		rates: func(ctx context.Context) ([]model.CurrencyRate, error) {
			return transform.Rates([]model.RateResponse{
				{CurrencyCodeA: 840, CurrencyCodeB: 980, RateBuy: decimal.RequireFromString("40"), RateSell: decimal.RequireFromString("41")},
				{CurrencyCodeA: 978, CurrencyCodeB: 980, RateBuy: decimal.RequireFromString("44"), RateSell: decimal.RequireFromString("45")},
			}), nil
		},
	}
}

func newTestApp(t *testing.T, f fetchers) (*app, *action.Recorder) {
	t.Helper()

	s, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	home, err := currency.Resolve(980)
	if err != nil {
		t.Fatal(err)
	}

	rec := &action.Recorder{}
	a := buildApp(appOptions{store: s, fetch: f, home: home, actions: rec})
	if notices := a.sync(context.Background(), false); len(notices) > 0 {
		t.Fatalf("Unexpected notices %v", notices)
	}
	return a, rec
}

func TestApp_AccountsView(t *testing.T) {
	a, _ := newTestApp(t, testFetchers())

	v, err := a.accountsView(view.AccountsAll, "")
	if err != nil {
		t.Fatal(err)
	}
	// 100 + 5 * 41 + 25
	if !v.Total.Equal(decimal.NewFromInt(330)) {
		t.Errorf("Expected total 330, got %s", v.Total)
	}
	if len(v.Sections) != 2 {
		t.Errorf("Expected cards and jars sections, got %d", len(v.Sections))
	}
}

func TestApp_SyncFailureKeepsSnapshot(t *testing.T) {
	f := testFetchers()
	fail := false
	fetchAccounts := f.accounts
	f.accounts = func(ctx context.Context) (accountsData, error) {
		if fail {
			return accountsData{}, errors.New("boom")
		}
		return fetchAccounts(ctx)
	}
	a, _ := newTestApp(t, f)

	fail = true
	notices := a.sync(context.Background(), true)
	if len(notices) != 1 || !strings.HasPrefix(notices[0], "Failed to fetch accounts: ") {
		t.Fatalf("Unexpected notices %v", notices)
	}

	if _, err := a.lookup("acc-uah"); err != nil {
		t.Errorf("Expected the last snapshot to stay visible, got %v", err)
	}
}

func TestApp_Lookup(t *testing.T) {
	a, _ := newTestApp(t, testFetchers())

	item, err := a.lookup("840-980")
	if err != nil || item.Kind != view.KindRate {
		t.Errorf("Expected rate item, got %+v %v", item, err)
	}
	item, err = a.lookup("jar-1")
	if err != nil || item.Kind != view.KindJar {
		t.Errorf("Expected jar item, got %+v %v", item, err)
	}
	if _, err := a.lookup("missing"); !errors.Is(err, view.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestApp_ListFor(t *testing.T) {
	a, _ := newTestApp(t, testFetchers())

	tests := []struct {
		id    string
		rates bool
		want  bool
	}{
		{"acc-uah", false, false},
		{"978-980", false, true},
		{"999-980", false, true},
		{"gone", false, false},
		{"acc-uah", true, true},
	}
	for _, tt := range tests {
		got := a.listFor(tt.id, tt.rates) == a.pinnedRates
		if got != tt.want {
			t.Errorf("listFor(%q, %v): expected rates list %v, got %v", tt.id, tt.rates, tt.want, got)
		}
	}
}

func TestApp_Pinning(t *testing.T) {
	a, _ := newTestApp(t, testFetchers())

	for _, id := range []string{"acc-usd", "jar-1"} {
		item, err := a.lookup(id)
		if err != nil {
			t.Fatal(err)
		}
		if pinned, err := a.togglePin(item); err != nil || !pinned {
			t.Fatalf("Expected %s to be pinned, got %v %v", id, pinned, err)
		}
	}

	moved, err := a.movePin(a.pinnedAccounts, "jar-1", true)
	if err != nil || !moved {
		t.Fatalf("Expected jar-1 to move up, got %v %v", moved, err)
	}
	moved, err = a.movePin(a.pinnedAccounts, "jar-1", true)
	if err != nil || moved {
		t.Errorf("Expected first item not to move, got %v %v", moved, err)
	}

	v, err := a.accountsView(view.AccountsAll, "")
	if err != nil {
		t.Fatal(err)
	}
	pinned := v.Sections[0]
	if pinned.Title != view.SectionPinned || pinned.Items[0].ID != "jar-1" || pinned.Items[1].ID != "acc-usd" {
		t.Errorf("Unexpected pinned section %+v", pinned)
	}
}

func TestApp_Actions(t *testing.T) {
	a, rec := newTestApp(t, testFetchers())

	item, _ := a.lookup("acc-uah")
	if value, err := a.copyItem(item); err != nil || value != "UA01" {
		t.Errorf("Expected IBAN to be copied, got %q %v", value, err)
	}

	jar, _ := a.lookup("jar-1")
	if _, err := a.topUp(jar, false); err != nil {
		t.Fatalf("topUp failed: %v", err)
	}
	if _, err := a.topUp(item, true); err != nil {
		t.Fatalf("topUp failed: %v", err)
	}

	usd, _ := a.lookup("acc-usd")
	if _, err := a.topUp(usd, false); err == nil {
		t.Error("Expected error for an account without a top-up page")
	}

	if len(rec.Copied) != 2 || rec.Copied[0] != "UA01" || rec.Copied[1] != "https://send.monobank.ua/send1" {
		t.Errorf("Unexpected copies %v", rec.Copied)
	}
	if len(rec.Opened) != 1 || rec.Opened[0] != "https://send.monobank.ua/jar/x" {
		t.Errorf("Unexpected opened pages %v", rec.Opened)
	}
}
