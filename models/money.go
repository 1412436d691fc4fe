package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func init() {
	// Storefront clients read prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func BRL(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.BRL}
}

// Cents returns the amount in minor units, rounded half away from zero.
func (m Money) Cents() int64 {
	return m.Amount.Mul(hundred).Round(0).IntPart()
}

// Code is the lowercase ISO code payment providers expect.
func (m Money) Code() string {
	return strings.ToLower(m.Currency.String())
}

func (m Money) String() string {
	symbol := m.Currency.String()
	if m.Currency == currency.BRL {
		symbol = "R$"
	}
	return fmt.Sprintf("%s %s", symbol, FormatBRL(m.Amount))
}

// FormatBRL renders 1234.5 as "1.234,50".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	n := len(intPart)
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

func ParseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}
	return unit, nil
}
