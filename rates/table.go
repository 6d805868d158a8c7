package rates

import (
	"context"
	"currency-converter/convert"
	"currency-converter/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnsupportedCurrency the currency is neither the base currency nor in the table
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// LookupFunc for looking up the exchange rate of a currency against a base currency.
type LookupFunc func(ctx context.Context, currency domain.Currency) (domain.Rate, error)

// Table static exchange rates against a base currency. A Table is never modified after New
// returns, so it is safe to share.
type Table struct {
	// base the currency every rate is quoted against
	base domain.Currency

	// rates maps a currency code to the base currency value of one unit of that currency
	rates domain.Rates
}

// New constructs a valid Table. Codes are normalized to upper case, must be unique after
// normalization, and every rate must be valid for conversion.
func New(base domain.Currency, entries domain.Rates) (*Table, error) {
	base = Normalize(base)
	if base == "" {
		return nil, errors.New("empty base currency")
	}

	rates := make(domain.Rates, len(entries))
	seen := make(map[domain.Currency]bool, len(entries))
	for currency, rate := range entries {
		currency = Normalize(currency)
		if currency == "" {
			return nil, errors.New("empty currency code")
		}
		if seen[currency] {
			return nil, fmt.Errorf("duplicate currency code [%v]", currency)
		}
		seen[currency] = true
		if err := convert.ValidateRate(rate); err != nil {
			return nil, fmt.Errorf("rate for [%v]: %w", currency, err)
		}
		if currency == base {
			if rate != 1 {
				return nil, fmt.Errorf("base currency [%v] must have rate 1, got %v", base, rate)
			}
			continue
		}
		rates[currency] = rate
	}

	return &Table{
		base:  base,
		rates: rates,
	}, nil
}

// Default the built-in USD table, approximate values as of June 2025.
func Default() *Table {
	t, err := New("USD", domain.Rates{
		"JPY": 0.0069,
		"MXN": 0.052,
		"EUR": 1.14,
		"DOP": 0.017,
		"COP": 0.00024,
		"BRL": 0.18,
		"GBP": 1.35,
		"CAD": 0.73,
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a JSON object of currency codes to rates, e.g. {"EUR": 1.14}
func Load(r io.Reader, base domain.Currency) (*Table, error) {
	var entries domain.Rates
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return New(base, entries)
}

// Normalize trims and upper-cases a currency code
func Normalize(currency domain.Currency) domain.Currency {
	return domain.Currency(strings.ToUpper(strings.TrimSpace(string(currency))))
}

// Base the currency all rates are quoted against
func (t *Table) Base() domain.Currency {
	return t.base
}

// Currencies the foreign currencies in the table, sorted
func (t *Table) Currencies() []domain.Currency {
	currencies := make([]domain.Currency, 0, len(t.rates))
	for currency := range t.rates {
		currencies = append(currencies, currency)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })
	return currencies
}

// Lookup the rate for currency. The base currency always has rate 1.
// Lookup satisfies LookupFunc.
func (t *Table) Lookup(_ context.Context, currency domain.Currency) (domain.Rate, error) {
	currency = Normalize(currency)
	if currency == t.base {
		return 1, nil
	}
	rate, ok := t.rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedCurrency, currency)
	}
	return rate, nil
}

// Inverse how many units of currency one unit of the base currency buys
func (t *Table) Inverse(currency domain.Currency) (domain.Rate, error) {
	rate, err := t.Lookup(context.Background(), currency)
	if err != nil {
		return 0, err
	}
	return 1 / rate, nil
}
