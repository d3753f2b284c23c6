package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencySymbols maps leading price symbols to ISO 4217 codes.
// Longer symbols must come first so "US$" wins over "$".
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
}

// Price is a display price parsed into a numeric amount at ingestion time.
// Display is always the upstream string, verbatim.
type Price struct {
	Display  string
	Amount   decimal.Decimal
	Currency string
	Valid    bool
}

// ParsePrice parses strings like "$3.50", "€1,299.00" or "USD 4".
// A price that cannot be parsed is returned with Valid=false and its
// Display preserved; it is not an error.
func ParsePrice(s string) Price {
	p := Price{Display: s}

	rest := strings.TrimSpace(s)
	rest, p.Currency = stripCurrency(rest)
	rest = strings.ReplaceAll(rest, ",", "")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return p
	}

	amount, err := decimal.NewFromString(rest)
	if err != nil {
		return p
	}
	p.Amount = amount
	p.Valid = true
	return p
}

// stripCurrency removes a leading (or trailing) currency symbol or
// three-letter code and reports the code it stood for.
func stripCurrency(s string) (string, string) {
	for _, cs := range currencySymbols {
		if strings.HasPrefix(s, cs.symbol) {
			return strings.TrimPrefix(s, cs.symbol), cs.code
		}
		if strings.HasSuffix(s, cs.symbol) {
			return strings.TrimSuffix(s, cs.symbol), cs.code
		}
	}
	if len(s) > 3 && isCurrencyCode(s[:3]) {
		return s[3:], s[:3]
	}
	return s, ""
}

func isCurrencyCode(s string) bool {
	for _, r := range s {
		if !unicode.IsUpper(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// Compare orders valid prices by amount and puts invalid prices last.
func (p Price) Compare(other Price) int {
	switch {
	case p.Valid && other.Valid:
		return p.Amount.Cmp(other.Amount)
	case p.Valid:
		return -1
	case other.Valid:
		return 1
	default:
		return 0
	}
}

// String returns the display form.
func (p Price) String() string {
	return p.Display
}

// UnmarshalJSON parses the upstream price string. Bare numbers are
// accepted and carry no currency.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParsePrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog: price %s: %w", data, err)
	}
	*p = ParsePrice(n.String())
	return nil
}

// MarshalJSON writes the display string.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Display)
}
