package rates

import (
	"context"
	"currency-converter/convert"
	"currency-converter/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"strings"
	"testing"
)

func TestTable_Lookup(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		currency domain.Currency
		want     domain.Rate
		wantErr  error
	}{
		{"base currency", "USD", 1.0, nil},
		{"lower case base", "usd", 1.0, nil},
		{"yen", "JPY", 0.0069, nil},
		{"padded lower case", " eur ", 1.14, nil},
		{"pound", "GBP", 1.35, nil},
		{"unknown", "XYZ", 0, ErrUnsupportedCurrency},
		{"empty", "", 0, ErrUnsupportedCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Lookup(context.Background(), tt.currency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_Currencies(t *testing.T) {
	table := Default()

	assert.Equal(t, domain.Currency("USD"), table.Base())
	assert.Equal(t,
		[]domain.Currency{"BRL", "CAD", "COP", "DOP", "EUR", "GBP", "JPY", "MXN"},
		table.Currencies(),
	)
}

func TestTable_Inverse(t *testing.T) {
	table := Default()

	inverse, err := table.Inverse("JPY")
	require.NoError(t, err)
	assert.InDelta(t, 144.93, float64(inverse), 0.01)

	_, err = table.Inverse("XYZ")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		base    domain.Currency
		entries domain.Rates
		wantErr error
	}{
		{"valid", "usd", domain.Rates{"eur": 1.14}, nil},
		{"base with rate one", "USD", domain.Rates{"USD": 1, "EUR": 1.14}, nil},
		{"zero rate", "USD", domain.Rates{"EUR": 0}, convert.ErrInvalidRate},
		{"negative rate", "USD", domain.Rates{"EUR": -1.14}, convert.ErrInvalidRate},
		{"nan rate", "USD", domain.Rates{"EUR": domain.Rate(math.NaN())}, convert.ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.base, tt.entries)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []domain.Currency{"EUR"}, table.Currencies())
		})
	}
}

func TestNew_BadBase(t *testing.T) {
	_, err := New("", domain.Rates{})
	assert.Error(t, err)

	_, err = New("USD", domain.Rates{"USD": 2})
	assert.Error(t, err)
}

func TestNew_CopiesEntries(t *testing.T) {
	entries := domain.Rates{"EUR": 1.14}
	table, err := New("USD", entries)
	require.NoError(t, err)

	entries["EUR"] = 2
	rate, err := table.Lookup(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, domain.Rate(1.14), rate)
}

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(`{"jpy": 0.0069, "EUR": 1.14}`), "USD")
	require.NoError(t, err)

	rate, err := table.Lookup(context.Background(), "JPY")
	require.NoError(t, err)
	assert.Equal(t, domain.Rate(0.0069), rate)

	_, err = Load(strings.NewReader(`{"EUR": "lots"}`), "USD")
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{"EUR": 0}`), "USD")
	assert.ErrorIs(t, err, convert.ErrInvalidRate)
}

func TestNew_DuplicateCodes(t *testing.T) {
	tests := []struct {
		name    string
		entries domain.Rates
	}{
		{"foreign currency", domain.Rates{"eur": 1.0, "EUR": 2.0}},
		{"padded", domain.Rates{"EUR": 1.14, " EUR": 1.14}},
		{"base currency", domain.Rates{"usd": 1, "USD": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("USD", tt.entries)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "duplicate currency code")
		})
	}
}

func TestLoad_DuplicateCodes(t *testing.T) {
	for i := 0; i < 50; i++ {
		_, err := Load(strings.NewReader(`{"eur": 1.0, "EUR": 2.0}`), "USD")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate currency code [EUR]")
	}
}
