// Package currency resolves ISO 4217 numeric codes into display currencies.
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vasylcode/monobar/internal/model"
)

// ErrUnknownCurrency is returned when a code is absent from the ISO 4217 table
var ErrUnknownCurrency = errors.New("unknown currency")

// Resolve maps a numeric ISO 4217 code to a currency
func Resolve(numeric int) (model.Currency, error) {
	e, ok := iso4217[numeric]
	if !ok {
		return model.Currency{}, fmt.Errorf("%w: %d", ErrUnknownCurrency, numeric)
	}
	return model.Currency{
		Name:   e.name,
		Code:   e.code,
		Number: FormatNumber(numeric),
		Flag:   Flag(e.code),
	}, nil
}

// Lookup is Resolve without the error: unknown codes become a placeholder
// currency named after the numeric code, with no flag.
func Lookup(numeric int) model.Currency {
	c, err := Resolve(numeric)
	if err != nil {
		return model.Currency{
			Name:   "Unknown currency",
			Code:   FormatNumber(numeric),
			Number: FormatNumber(numeric),
		}
	}
	return c
}

// ByCode resolves an alphabetic (UAH) or numeric (980) code
func ByCode(code string) (model.Currency, error) {
	code = strings.TrimSpace(code)
	if n, err := strconv.Atoi(code); err == nil {
		return Resolve(n)
	}

	code = strings.ToUpper(code)
	for numeric, e := range iso4217 {
		if e.code == code {
			return Resolve(numeric)
		}
	}
	return model.Currency{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
}

// FormatNumber renders a numeric code the way ISO 4217 writes it ("036")
func FormatNumber(numeric int) string {
	return fmt.Sprintf("%03d", numeric)
}

// Flag returns the flag emoji for an alphabetic currency code, or "" when
// there is no single issuing territory.
func Flag(code string) string {
	code = strings.ToUpper(code)
	if f, ok := flagOverrides[code]; ok {
		return f
	}
	if len(code) != 3 || code[0] == 'X' {
		return ""
	}

	var b strings.Builder
	for _, r := range code[:2] {
		if r < 'A' || r > 'Z' {
			return ""
		}
		// Regional indicator symbols start at U+1F1E6 for 'A'
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}
