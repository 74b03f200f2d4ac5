package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultConversionScale is the number of decimal places kept by Convert
// when no scale is configured.
const DefaultConversionScale int32 = 2

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	uow          portsrepo.UnitOfWork
	scale        int32
}

// NewCurrencyService creates a new CurrencyService. Converted amounts are
// rounded half-up to scale decimal places.
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade, uow portsrepo.UnitOfWork, scale int32, options ...ServiceOption) portssvc.CurrencySvcFacade {
	if scale < 0 {
		scale = DefaultConversionScale
	}
	svc := &currencyService{
		currencyRepo: repo,
		uow:          uow,
		scale:        scale,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

var one = decimal.NewFromInt(1)

// isCurrencyCode accepts three ASCII letters A-Z. ISO 4217 membership is not
// required so in-house and crypto tags can be kept.
func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// SaveCurrency creates the currency or updates it in place. The first
// currency saved becomes the base currency. A zero ExchangeRate keeps the
// stored rate.
func (s *currencyService) SaveCurrency(ctx context.Context, req dto.SaveCurrencyRequest, userID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if !isCurrencyCode(code) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrencyCode, req.CurrencyCode)
	}
	if _, err := currency.ParseISO(code); err != nil {
		s.LogDebug(ctx, "Currency code is not in ISO 4217", slog.String("currency_code", code))
	}
	if req.ExchangeRate.IsNegative() || !domain.FitsScale(req.ExchangeRate, domain.RateScale) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidExchangeRate, req.ExchangeRate)
	}

	var saved *domain.Currency
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
		switch {
		case err == nil:
			if err := applyCurrencyChanges(existing, req); err != nil {
				return err
			}
			existing.Touch(userID, s.Now())
			saved = existing
			return s.currencyRepo.UpdateCurrency(ctx, existing)
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		created := domain.Currency{
			CurrencyCode: code,
			Symbol:       req.Symbol,
			Name:         req.Name,
			ExchangeRate: req.ExchangeRate,
			IsActive:     req.IsActive == nil || *req.IsActive,
			Version:      1,
			AuditFields:  domain.NewAuditFields(userID, s.Now()),
		}

		_, err = s.currencyRepo.FindBaseCurrency(ctx)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			if !created.ExchangeRate.IsZero() && !created.ExchangeRate.Equal(one) {
				return fmt.Errorf("%w: first currency becomes the base", domain.ErrInvalidExchangeRate)
			}
			if !created.IsActive {
				return domain.ErrBaseCurrencyInactive
			}
			created.PromoteToBase()
		case err != nil:
			return err
		case !created.ExchangeRate.IsPositive():
			return fmt.Errorf("%w: %s", domain.ErrInvalidExchangeRate, created.ExchangeRate)
		}

		saved = &created
		return s.currencyRepo.SaveCurrency(ctx, created)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency saved successfully",
		slog.String("currency_code", saved.CurrencyCode),
		slog.String("exchange_rate", saved.ExchangeRate.String()),
		slog.Bool("base", saved.IsBaseCurrency))
	return saved, nil
}

func applyCurrencyChanges(c *domain.Currency, req dto.SaveCurrencyRequest) error {
	if !req.ExchangeRate.IsZero() {
		if c.IsBaseCurrency && !req.ExchangeRate.Equal(one) {
			return fmt.Errorf("%w: %s is the base currency", domain.ErrInvalidExchangeRate, c.CurrencyCode)
		}
		c.ExchangeRate = req.ExchangeRate
	}
	if req.IsActive != nil {
		if c.IsBaseCurrency && !*req.IsActive {
			return domain.ErrBaseCurrencyInactive
		}
		c.IsActive = *req.IsActive
	}
	if req.Symbol != "" {
		c.Symbol = req.Symbol
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	return nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	c, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find currency", slog.String("currency_code", currencyCode))
		return nil, err
	}
	return c, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	c, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find base currency")
		return nil, err
	}
	return c, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// SetAsBaseCurrency demotes the current base and promotes code in one unit of work.
func (s *currencyService) SetAsBaseCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error) {
	code := strings.ToUpper(currencyCode)
	var target *domain.Currency
	err := s.uow.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		target, err = s.currencyRepo.FindCurrencyByCode(ctx, code)
		if err != nil {
			return err
		}
		if !target.IsActive {
			return fmt.Errorf("%w: %s", domain.ErrCurrencyInactive, code)
		}
		if target.IsBaseCurrency {
			return nil
		}

		now := s.Now()
		previous, err := s.currencyRepo.FindBaseCurrency(ctx)
		switch {
		case err == nil:
			previous.DemoteFromBase()
			previous.Touch(userID, now)
			if err := s.currencyRepo.UpdateCurrency(ctx, previous); err != nil {
				return err
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		target.PromoteToBase()
		target.Touch(userID, now)
		return s.currencyRepo.UpdateCurrency(ctx, target)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to set base currency", slog.String("currency_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Base currency changed", slog.String("currency_code", code))
	return target, nil
}

// Convert moves amount from one currency to another through the base
// currency: amount * fromRate / toRate, rounded half-up.
func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	from, err := s.activeCurrency(ctx, fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := s.activeCurrency(ctx, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	if from.CurrencyCode == to.CurrencyCode {
		return amount, nil
	}
	if !to.ExchangeRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s has rate %s", domain.ErrInvalidExchangeRate, to.CurrencyCode, to.ExchangeRate)
	}

	converted := amount.Mul(from.ExchangeRate).DivRound(to.ExchangeRate, s.scale)
	s.LogDebug(ctx, "Amount converted",
		slog.String("from", from.CurrencyCode),
		slog.String("to", to.CurrencyCode),
		slog.String("amount", amount.String()),
		slog.String("result", converted.String()))
	return converted, nil
}

func (s *currencyService) activeCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	c, err := s.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrCurrencyInactive, c.CurrencyCode)
	}
	return c, nil
}
