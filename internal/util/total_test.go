package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/currency"
	"github.com/vasylcode/monobar/internal/model"
)

func mustCurrency(t *testing.T, numeric int) model.Currency {
	t.Helper()
	c, err := currency.Resolve(numeric)
	if err != nil {
		t.Fatalf("Resolve(%d) failed: %v", numeric, err)
	}
	return c
}

func TestCalculateTotal_ForeignWithRate(t *testing.T) {
	uah := mustCurrency(t, 980)
	eur := mustCurrency(t, 978)

	accounts := []model.Account{{Currency: eur, Balance: decimal.NewFromInt(100)}}
	rates := []model.CurrencyRate{{
		CurrencyA: eur,
		CurrencyB: uah,
		RateSell:  decimal.NewFromInt(42),
	}}

	total := CalculateTotal(Accounts(accounts), rates, uah)
	if !total.Equal(decimal.NewFromInt(4200)) {
		t.Errorf("Expected 4200, got %s", total)
	}
}

func TestCalculateTotal_HomeCurrencyIgnoresRates(t *testing.T) {
	uah := mustCurrency(t, 980)
	balance := decimal.RequireFromString("1234.56")

	rateSets := [][]model.CurrencyRate{
		nil,
		{{CurrencyA: uah, CurrencyB: uah, RateSell: decimal.NewFromInt(3)}},
		{{CurrencyA: mustCurrency(t, 840), CurrencyB: uah, RateSell: decimal.NewFromInt(40)}},
	}

	for i, rates := range rateSets {
		total := CalculateTotal(Accounts([]model.Account{{Currency: uah, Balance: balance}}), rates, uah)
		if !total.Equal(balance) {
			t.Errorf("case %d: expected %s, got %s", i, balance, total)
		}
	}
}

func TestCalculateTotal_MissingRateContributesZero(t *testing.T) {
	uah := mustCurrency(t, 980)
	pln := mustCurrency(t, 985)
	usd := mustCurrency(t, 840)

	items := append(
		Accounts([]model.Account{
			{Currency: pln, Balance: decimal.NewFromInt(500)},
			{Currency: uah, Balance: decimal.NewFromInt(10)},
		}),
		Jars([]model.Jar{{Currency: usd, Balance: decimal.NewFromInt(2)}})...,
	)
	rates := []model.CurrencyRate{{CurrencyA: usd, CurrencyB: uah, RateSell: decimal.RequireFromString("41.5")}}

	total := CalculateTotal(items, rates, uah)
	if !total.Equal(decimal.NewFromInt(93)) {
		t.Errorf("Expected 93, got %s", total)
	}
}

func TestSellRate_CrossFallback(t *testing.T) {
	uah := mustCurrency(t, 980)
	gbp := mustCurrency(t, 826)

	rates := []model.CurrencyRate{{
		CurrencyA: gbp,
		CurrencyB: uah,
		RateCross: decimal.NewNullDecimal(decimal.RequireFromString("50.5")),
	}}

	rate, ok := SellRate(rates, gbp, uah)
	if !ok || !rate.Equal(decimal.RequireFromString("50.5")) {
		t.Errorf("Expected cross rate 50.5, got %s (%v)", rate, ok)
	}

	if _, ok := SellRate(rates, mustCurrency(t, 840), uah); ok {
		t.Error("Expected no rate for USD")
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[string]string{
		"12.3":      "12.30",
		"1500":      "1.50K",
		"-2500000":  "-2.50M",
		"999.999":   "1000.00",
		"1000000.5": "1.00M",
	}
	for in, want := range tests {
		if got := FormatCompact(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatCompact(%s) = %s, want %s", in, got, want)
		}
	}
}
