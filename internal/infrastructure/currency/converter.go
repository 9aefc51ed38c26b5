// Package currency конвертирует цены между валютами по курсам к базовой валюте.
package currency

import (
	"context"
	"sync"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/jitter"
	"github.com/trendbook/search-backend/pkg/logger"
)

// Service хранит таблицу курсов в памяти и периодически обновляет её из
// репозитория. Конвертация идёт через базовую валюту кросс-курсом.
type Service struct {
	rates  usecase.RatesRepository
	cfg    *cfg.CurrencyCfg
	logger logger.Logger

	mu    sync.RWMutex
	table map[string]decimal.Decimal

	backoffBase time.Duration
}

func NewService(rates usecase.RatesRepository, cfg *cfg.CurrencyCfg, logger logger.Logger) *Service {
	return &Service{
		rates:  rates,
		cfg:    cfg,
		logger: logger,
		table:  make(map[string]decimal.Decimal),

		backoffBase: time.Second,
	}
}

// Run загружает курсы и обновляет их с заданным интервалом до отмены контекста.
func (s *Service) Run(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}

	go s.refreshLoop(ctx)

	return nil
}

// Convert переводит сумму из валюты from в валюту to.
// Неизвестная валюта является ошибкой, а не поводом вернуть исходную сумму.
func (s *Service) Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.table) == 0 {
		return 0, e.ErrNoRates
	}

	fromRate, err := s.rate(from)
	if err != nil {
		return 0, err
	}

	toRate, err := s.rate(to)
	if err != nil {
		return 0, err
	}

	converted := decimal.NewFromFloat(amount).Div(fromRate).Mul(toRate)

	result, _ := converted.Float64()

	return result, nil
}

// rate возвращает курс валюты к базовой. Вызывается под RLock.
func (s *Service) rate(currency string) (decimal.Decimal, error) {
	if currency == s.cfg.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, ok := s.table[currency]
	if !ok || rate.IsZero() {
		return decimal.Decimal{}, e.ErrUnknownCurrency
	}

	return rate, nil
}

func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(jitter.Duration(s.cfg.RefreshInterval, jitter.DefaultJitter))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warnf("Currency rates refresh failed, keeping previous table: %v", err)
			}
			ticker.Reset(jitter.Duration(s.cfg.RefreshInterval, jitter.DefaultJitter))
		}
	}
}

// refresh перечитывает курсы с повторами и атомарно подменяет таблицу.
func (s *Service) refresh(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := jitter.ExponentialBackoff(s.backoffBase, time.Minute, attempt-1, jitter.DefaultJitter)
			select {
			case <-ctx.Done():
				return e.Wrap(whereami.WhereAmI(), ctx.Err())
			case <-time.After(backoff):
			}
		}

		rates, err := s.rates.GetRates(ctx)
		if err != nil {
			lastErr = err
			continue
		}

		table := make(map[string]decimal.Decimal, len(rates))
		for currency, rate := range rates {
			table[currency] = decimal.NewFromFloat(rate)
		}

		s.mu.Lock()
		s.table = table
		s.mu.Unlock()

		return nil
	}

	return e.Wrap(whereami.WhereAmI(), lastErr)
}
