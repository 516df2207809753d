package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portsrepo "github.com/ndolodev/bureau_change_app/internal/core/ports/repositories"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
)

// registrySource answers rate lookups from the currency registry. The
// registry's buy/sell/current rates are the shop's own book, which is the
// authority for spread-profit computation.
type registrySource struct {
	currencyRepo portsrepo.CurrencyReader
}

// NewRegistrySource creates a RateSource backed by the currency registry.
func NewRegistrySource(currencyRepo portsrepo.CurrencyReader) portssvc.RateSource {
	return &registrySource{currencyRepo: currencyRepo}
}

var _ portssvc.RateSource = (*registrySource)(nil)

// CurrentRates implements portssvc.RateSource. An unregistered currency
// yields (nil, nil): unknown is a valid answer, not an error.
func (s *registrySource) CurrentRates(ctx context.Context, currencyCode string) (*domain.RateQuote, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up rates for %s: %w", currencyCode, err)
	}
	return &domain.RateQuote{
		CurrencyCode: currency.CurrencyCode,
		BuyRate:      currency.BuyRate,
		SellRate:     currency.SellRate,
		CurrentRate:  currency.CurrentRate,
	}, nil
}
