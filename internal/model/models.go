package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTypeFOP is the sole-proprietor account type. FOP accounts are
// identified by IBAN, every other type is card-like.
const AccountTypeFOP AccountType = "fop"

// AccountType is the product type of an account as reported by the API
type AccountType string

// Known card-like account types
const (
	AccountTypeBlack         AccountType = "black"
	AccountTypeWhite         AccountType = "white"
	AccountTypePlatinum      AccountType = "platinum"
	AccountTypeIron          AccountType = "iron"
	AccountTypeYellow        AccountType = "yellow"
	AccountTypeEAid          AccountType = "eAid"
	AccountTypeMadeInUkraine AccountType = "madeInUkraine"
)

// IsCard reports whether the account type is a card-like variant
func (t AccountType) IsCard() bool {
	return t != AccountTypeFOP
}

// Currency is a resolved ISO 4217 currency
type Currency struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Number string `json:"number"`
	Flag   string `json:"flag,omitempty"`
}

// Account is a display-ready bank account
type Account struct {
	ID           string          `json:"id"`
	Type         AccountType     `json:"type"`
	Currency     Currency        `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	CashbackType string          `json:"cashbackType,omitempty"`
	MaskedPan    []string        `json:"maskedPan"`
	IBAN         string          `json:"iban"`
	SendID       string          `json:"sendId,omitempty"`
}

// Jar is a display-ready savings jar
type Jar struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Currency    Currency            `json:"currency"`
	Balance     decimal.Decimal     `json:"balance"`
	Goal        decimal.NullDecimal `json:"goal"`
	SendID      string              `json:"sendId,omitempty"`
}

// CurrencyRate is a display-ready exchange rate for a currency pair
type CurrencyRate struct {
	ID        string              `json:"id"`
	CurrencyA Currency            `json:"currencyA"`
	CurrencyB Currency            `json:"currencyB"`
	Date      time.Time           `json:"date"`
	RateBuy   decimal.Decimal     `json:"rateBuy"`
	RateSell  decimal.Decimal     `json:"rateSell"`
	RateCross decimal.NullDecimal `json:"rateCross"`
}

// ClientInfo is the raw response of the personal client-info endpoint
type ClientInfo struct {
	ClientID    string            `json:"clientId"`
	Name        string            `json:"name"`
	WebHookURL  string            `json:"webHookUrl"`
	Permissions string            `json:"permissions"`
	Accounts    []AccountResponse `json:"accounts"`
	Jars        []JarResponse     `json:"jars"`
}

// AccountResponse is a raw account record. Balances are in minor units.
type AccountResponse struct {
	ID           string      `json:"id"`
	SendID       string      `json:"sendId,omitempty"`
	Balance      int64       `json:"balance"`
	CreditLimit  int64       `json:"creditLimit"`
	Type         AccountType `json:"type"`
	CurrencyCode int         `json:"currencyCode"`
	CashbackType string      `json:"cashbackType,omitempty"`
	MaskedPan    []string    `json:"maskedPan"`
	IBAN         string      `json:"iban"`
}

// JarResponse is a raw jar record. Balance and goal are in minor units.
type JarResponse struct {
	ID           string `json:"id"`
	SendID       string `json:"sendId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	CurrencyCode int    `json:"currencyCode"`
	Balance      int64  `json:"balance"`
	Goal         *int64 `json:"goal,omitempty"`
}

// RateResponse is a raw currency-pair rate record
type RateResponse struct {
	CurrencyCodeA int                 `json:"currencyCodeA"`
	CurrencyCodeB int                 `json:"currencyCodeB"`
	Date          int64               `json:"date"`
	RateBuy       decimal.Decimal     `json:"rateBuy"`
	RateSell      decimal.Decimal     `json:"rateSell"`
	RateCross     decimal.NullDecimal `json:"rateCross"`
}

// Funds returns the account balance and its currency
func (a Account) Funds() (decimal.Decimal, Currency) {
	return a.Balance, a.Currency
}

// Funds returns the jar balance and its currency
func (j Jar) Funds() (decimal.Decimal, Currency) {
	return j.Balance, j.Currency
}
