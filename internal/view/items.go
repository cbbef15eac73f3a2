package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/model"
	"github.com/vasylcode/monobar/internal/transform"
)

// TopUpBaseURL is the public top-up page prefix
const TopUpBaseURL = "https://send.monobank.ua/"

// AccountItem wraps an account as a list row
func AccountItem(a *model.Account, pinned bool) Item {
	return Item{
		ID:        a.ID,
		Kind:      KindAccount,
		Title:     AccountTitle(*a),
		Subtitle:  a.Balance.StringFixed(2),
		Accessory: transform.PanOrIBAN(*a),
		Tag:       string(a.Type),
		Pinned:    pinned,
		Account:   a,
	}
}

// JarItem wraps a jar as a list row
func JarItem(j *model.Jar, pinned bool) Item {
	return Item{
		ID:        j.ID,
		Kind:      KindJar,
		Title:     JarTitle(*j),
		Subtitle:  JarSubtitle(*j),
		Accessory: JarProgress(*j),
		Tag:       "jar",
		Pinned:    pinned,
		Jar:       j,
	}
}

// RateItem wraps a rate as a list row
func RateItem(r *model.CurrencyRate, pinned bool) Item {
	return Item{
		ID:        r.ID,
		Kind:      KindRate,
		Title:     RateTitle(*r),
		Subtitle:  RateSubtitle(*r),
		Accessory: fmt.Sprintf("%s – %s", r.CurrencyA.Name, r.CurrencyB.Name),
		Pinned:    pinned,
		Rate:      r,
	}
}

func withFlag(c model.Currency) string {
	if c.Flag == "" {
		return c.Code
	}
	return c.Flag + " " + c.Code
}

// AccountTitle renders "🇺🇦 UAH, black"
func AccountTitle(a model.Account) string {
	return fmt.Sprintf("%s, %s", withFlag(a.Currency), a.Type)
}

// JarTitle renders "🇺🇦 UAH, Holidays"
func JarTitle(j model.Jar) string {
	return fmt.Sprintf("%s, %s", withFlag(j.Currency), j.Title)
}

// JarSubtitle renders the balance, and the goal when there is one
func JarSubtitle(j model.Jar) string {
	if j.Goal.Valid && j.Goal.Decimal.IsPositive() {
		return fmt.Sprintf("%s / %s", j.Balance.StringFixed(2), j.Goal.Decimal.StringFixed(2))
	}
	return j.Balance.StringFixed(2)
}

// JarProgress renders how far a jar is from its goal
func JarProgress(j model.Jar) string {
	if !j.Goal.Valid || !j.Goal.Decimal.IsPositive() {
		return "No goal"
	}
	if j.Balance.GreaterThanOrEqual(j.Goal.Decimal) {
		return "Done"
	}
	pct := j.Balance.Div(j.Goal.Decimal).Mul(decimal.NewFromInt(100))
	return pct.StringFixed(0) + "%"
}

// RateTitle renders "🇺🇸 USD - 🇺🇦 UAH"
func RateTitle(r model.CurrencyRate) string {
	return fmt.Sprintf("%s - %s", withFlag(r.CurrencyA), withFlag(r.CurrencyB))
}

// RateSubtitle renders the cross rate, or "buy / sell"
func RateSubtitle(r model.CurrencyRate) string {
	if r.RateCross.Valid {
		return r.RateCross.Decimal.StringFixed(2)
	}
	return r.RateBuy.StringFixed(2) + " / " + r.RateSell.StringFixed(2)
}

// RateValue is the value copied for a rate: the cross rate when quoted,
// the sell rate otherwise
func RateValue(r model.CurrencyRate) string {
	if r.RateCross.Valid {
		return r.RateCross.Decimal.String()
	}
	return r.RateSell.String()
}

// TopUpURL returns the top-up page of a send id
func TopUpURL(sendID string) string {
	return TopUpBaseURL + strings.TrimPrefix(sendID, "/")
}

// CanTopUp reports whether an item has a top-up page. Accounts need a send
// id and hryvnia currency, jars only a send id.
func CanTopUp(item Item) bool {
	switch item.Kind {
	case KindAccount:
		return item.Account.SendID != "" && item.Account.Currency.Code == "UAH"
	case KindJar:
		return item.Jar.SendID != ""
	}
	return false
}

// SendID returns the send id of an account or jar row
func SendID(item Item) string {
	switch item.Kind {
	case KindAccount:
		return item.Account.SendID
	case KindJar:
		return item.Jar.SendID
	}
	return ""
}

// CopyValue is what the primary copy action puts on the clipboard: the IBAN
// of an account, the top-up URL of a jar, the rate value of a rate
func CopyValue(item Item) (string, bool) {
	switch item.Kind {
	case KindAccount:
		return item.Account.IBAN, item.Account.IBAN != ""
	case KindJar:
		if item.Jar.SendID == "" {
			return "", false
		}
		return TopUpURL(item.Jar.SendID), true
	case KindRate:
		return RateValue(*item.Rate), true
	}
	return "", false
}
