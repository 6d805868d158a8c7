package convert

import (
	"currency-converter/domain"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount amount is negative or not a number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRate rate is zero, negative or not a number
	ErrInvalidRate = errors.New("invalid rate")
)

// Convert expresses amount, denominated in the base currency, in units of a foreign currency
// whose base currency value is rate.
func Convert(amount domain.Amount, rate domain.Rate) (domain.Amount, error) {
	if err := ValidateAmount(amount); err != nil {
		return 0, err
	}
	if err := ValidateRate(rate); err != nil {
		return 0, err
	}
	return domain.Amount(float64(amount) / float64(rate)), nil
}

// ValidateAmount fails with ErrInvalidAmount unless amount is a finite number >= 0
func ValidateAmount(amount domain.Amount) error {
	f := float64(amount)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v is not a number", ErrInvalidAmount, f)
	}
	if f < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidAmount, f)
	}
	return nil
}

// ValidateRate fails with ErrInvalidRate unless rate is a finite number > 0
func ValidateRate(rate domain.Rate) error {
	f := float64(rate)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v is not a number", ErrInvalidRate, f)
	}
	if f <= 0 {
		return fmt.Errorf("%w: %v must be greater than zero", ErrInvalidRate, f)
	}
	return nil
}
