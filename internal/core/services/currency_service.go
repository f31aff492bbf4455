package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// currencyService provides currency registry operations.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode:  req.CurrencyCode,
		Symbol:        req.Symbol,
		Name:          req.Name,
		DecimalPlaces: req.DecimalPlaces,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, req.CurrencyCode)
		}
		return nil, err
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its ISO 4217 code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
}

// ListCurrencies retrieves all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
