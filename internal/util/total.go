package util

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vasylcode/monobar/internal/model"
)

// Balancer is anything holding an amount of money in one currency
type Balancer interface {
	Funds() (decimal.Decimal, model.Currency)
}

// CalculateTotal sums balances in the home currency. Foreign balances are
// converted with the sell rate of the matching pair; balances whose currency
// has no rate contribute nothing.
func CalculateTotal(items []Balancer, rates []model.CurrencyRate, home model.Currency) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		balance, cur := item.Funds()
		if cur.Number == home.Number {
			total = total.Add(balance)
			continue
		}

		rate, ok := SellRate(rates, cur, home)
		if !ok {
			continue
		}
		total = total.Add(balance.Mul(rate))
	}
	return total
}

// SellRate finds the price of one unit of cur in home. Cross-only quotes have
// no sell price, the cross rate is used for them instead.
func SellRate(rates []model.CurrencyRate, cur, home model.Currency) (decimal.Decimal, bool) {
	for _, r := range rates {
		if r.CurrencyA.Number != cur.Number || r.CurrencyB.Number != home.Number {
			continue
		}
		if !r.RateSell.IsZero() {
			return r.RateSell, true
		}
		if r.RateCross.Valid {
			return r.RateCross.Decimal, true
		}
	}
	return decimal.Zero, false
}

// Accounts adapts accounts for CalculateTotal
func Accounts(accounts []model.Account) []Balancer {
	out := make([]Balancer, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a)
	}
	return out
}

// Jars adapts jars for CalculateTotal
func Jars(jars []model.Jar) []Balancer {
	out := make([]Balancer, 0, len(jars))
	for _, j := range jars {
		out = append(out, j)
	}
	return out
}

// FormatAmount formats an amount with two decimals and the currency code
func FormatAmount(value decimal.Decimal, cur model.Currency) string {
	return fmt.Sprintf("%s %s", value.StringFixed(2), cur.Code)
}

// FormatCompact formats an amount for narrow columns
func FormatCompact(value decimal.Decimal) string {
	million := decimal.NewFromInt(1000000)
	thousand := decimal.NewFromInt(1000)

	abs := value.Abs()
	if abs.GreaterThanOrEqual(million) {
		return value.Div(million).StringFixed(2) + "M"
	} else if abs.GreaterThanOrEqual(thousand) {
		return value.Div(thousand).StringFixed(2) + "K"
	}
	return value.StringFixed(2)
}
