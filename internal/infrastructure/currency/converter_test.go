package currency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

type stubRatesRepo struct {
	rates map[string]float64
	err   error
	calls int
}

func (s *stubRatesRepo) GetRates(_ context.Context) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rates, nil
}

func newTestService(t *testing.T, repo *stubRatesRepo) *Service {
	t.Helper()

	svc := NewService(repo, &cfg.CurrencyCfg{
		BaseCurrency:    "EUR",
		RefreshInterval: time.Hour,
		MaxRetries:      3,
	}, logger.NewSlogLogger())

	require.NoError(t, svc.refresh(context.Background()))

	return svc
}

func TestConvertCrossRate(t *testing.T) {
	svc := newTestService(t, &stubRatesRepo{rates: map[string]float64{
		"DKK": 7.46,
		"USD": 1.08,
	}})

	// 746 DKK -> 100 EUR -> 108 USD
	got, err := svc.Convert(746, "DKK", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 108.0, got, 1e-9)
}

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	svc := newTestService(t, &stubRatesRepo{rates: map[string]float64{"DKK": 7.46}})

	got, err := svc.Convert(199.99, "DKK", "DKK")
	require.NoError(t, err)
	assert.Equal(t, 199.99, got)
}

func TestConvertToAndFromBase(t *testing.T) {
	svc := newTestService(t, &stubRatesRepo{rates: map[string]float64{"DKK": 7.46}})

	toBase, err := svc.Convert(7.46, "DKK", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, toBase, 1e-9)

	fromBase, err := svc.Convert(1, "EUR", "DKK")
	require.NoError(t, err)
	assert.InDelta(t, 7.46, fromBase, 1e-9)
}

func TestConvertUnknownCurrency(t *testing.T) {
	svc := newTestService(t, &stubRatesRepo{rates: map[string]float64{"DKK": 7.46}})

	_, err := svc.Convert(100, "XXX", "DKK")
	assert.ErrorIs(t, err, e.ErrUnknownCurrency)

	_, err = svc.Convert(100, "DKK", "XXX")
	assert.ErrorIs(t, err, e.ErrUnknownCurrency)
}

func TestRefreshRetriesOnFailure(t *testing.T) {
	repo := &stubRatesRepo{err: e.ErrNoRates}
	svc := NewService(repo, &cfg.CurrencyCfg{
		BaseCurrency:    "EUR",
		RefreshInterval: time.Hour,
		MaxRetries:      3,
	}, logger.NewSlogLogger())

	svc.backoffBase = time.Millisecond

	err := svc.refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, repo.calls)
}

func TestConvertWithoutRatesTable(t *testing.T) {
	svc := NewService(&stubRatesRepo{}, &cfg.CurrencyCfg{BaseCurrency: "EUR", MaxRetries: 1}, logger.NewSlogLogger())

	_, err := svc.Convert(100, "DKK", "EUR")
	assert.ErrorIs(t, err, e.ErrNoRates)
}
