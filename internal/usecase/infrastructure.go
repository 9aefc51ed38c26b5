package usecase

import "context"

// CurrencyConverter — граница конвертации валют. Детали источника курсов
// остаются за реализацией.
type CurrencyConverter interface {
	Convert(amount float64, from, to string) (float64, error)
}

// ImageURLResolver преобразует ключ объектного хранилища в публичный URL.
type ImageURLResolver interface {
	PublicURL(storageKey string) string
}

type EventProducer interface {
	SearchPerformed(ctx context.Context, event *SearchPerformedEvent) error
}
