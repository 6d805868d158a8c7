package exchange

import (
	"context"
	"currency-converter/convert"
	"currency-converter/domain"
	"currency-converter/rates"
	"fmt"
)

// Service interface for converting from the base currency to another
type Service interface {
	Convert(ctx context.Context, amount domain.Amount, to domain.Currency) (domain.Exchanged, error)
}

// service converts with rates from lookup
type service struct {
	// lookup to lookup the rate of the target currency against the base currency
	lookup rates.LookupFunc
}

// NewService constructs a valid Service
func NewService(lookup rates.LookupFunc) Service {
	return &service{
		lookup: lookup,
	}
}

// Convert computes a conversion from the base currency to another with the rate from lookup.
func (s *service) Convert(ctx context.Context, amount domain.Amount, to domain.Currency) (domain.Exchanged, error) {
	rate, err := s.lookup(ctx, to)
	if err != nil {
		return domain.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, err)
	}

	converted, err := convert.Convert(amount, rate)
	if err != nil {
		return domain.Exchanged{}, fmt.Errorf("convert to [%v]: %w", to, err)
	}

	return domain.Exchanged{
		Rate:   rate,
		Amount: converted,
	}, nil
}
