// Package transform turns raw monobank API records into display models.
package transform

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/currency"
	"github.com/vasylcode/monobar/internal/model"
)

// minorUnits converts a minor-unit amount (kopiykas, cents) to major units
func minorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// Account converts a raw account record
func Account(raw model.AccountResponse) model.Account {
	pans := raw.MaskedPan
	if pans == nil {
		pans = []string{}
	}

	return model.Account{
		ID:           raw.ID,
		Type:         raw.Type,
		Currency:     currency.Lookup(raw.CurrencyCode),
		Balance:      minorUnits(raw.Balance),
		CreditLimit:  minorUnits(raw.CreditLimit),
		CashbackType: raw.CashbackType,
		MaskedPan:    pans,
		IBAN:         raw.IBAN,
		SendID:       raw.SendID,
	}
}

// Jar converts a raw jar record
func Jar(raw model.JarResponse) model.Jar {
	jar := model.Jar{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Currency:    currency.Lookup(raw.CurrencyCode),
		Balance:     minorUnits(raw.Balance),
		SendID:      raw.SendID,
	}
	if raw.Goal != nil {
		jar.Goal = decimal.NewNullDecimal(minorUnits(*raw.Goal))
	}
	return jar
}

// Rate converts a raw currency-pair rate record
func Rate(raw model.RateResponse) model.CurrencyRate {
	return model.CurrencyRate{
		ID:        RateID(raw.CurrencyCodeA, raw.CurrencyCodeB),
		CurrencyA: currency.Lookup(raw.CurrencyCodeA),
		CurrencyB: currency.Lookup(raw.CurrencyCodeB),
		Date:      time.Unix(raw.Date, 0),
		RateBuy:   raw.RateBuy,
		RateSell:  raw.RateSell,
		RateCross: raw.RateCross,
	}
}

// RateID derives a stable identifier from an ordered currency pair, so pins
// survive a refetch.
func RateID(codeA, codeB int) string {
	return fmt.Sprintf("%s-%s", currency.FormatNumber(codeA), currency.FormatNumber(codeB))
}

// Accounts converts every raw account
func Accounts(raw []model.AccountResponse) []model.Account {
	out := make([]model.Account, 0, len(raw))
	for _, a := range raw {
		out = append(out, Account(a))
	}
	return out
}

// Jars converts every raw jar
func Jars(raw []model.JarResponse) []model.Jar {
	out := make([]model.Jar, 0, len(raw))
	for _, j := range raw {
		out = append(out, Jar(j))
	}
	return out
}

// Rates converts every raw rate
func Rates(raw []model.RateResponse) []model.CurrencyRate {
	out := make([]model.CurrencyRate, 0, len(raw))
	for _, r := range raw {
		out = append(out, Rate(r))
	}
	return out
}

// PanOrIBAN returns the identifier shown next to an account. FOP accounts and
// accounts without a masked PAN fall back to the IBAN.
func PanOrIBAN(a model.Account) string {
	if a.Type == model.AccountTypeFOP || len(a.MaskedPan) == 0 {
		return a.IBAN
	}
	return a.MaskedPan[0]
}
