package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки поискового конвейера
	ErrEmptyQueryVector   = fmt.Errorf("query vector is empty")
	ErrDetectionNotFound  = fmt.Errorf("detection not found")
	ErrSearchNotFound     = fmt.Errorf("search not found")
	ErrNoProductEmbedding = fmt.Errorf("product has no indexed embedding")

	// Ошибки каталога и валют
	ErrUnknownCurrency = fmt.Errorf("unknown currency")
	ErrNoRates         = fmt.Errorf("exchange rates are not loaded")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMissingFields    = fmt.Errorf("required fields are missing")
	ErrNoDetections     = fmt.Errorf("no detections provided")
	ErrUnknownLegalDoc  = fmt.Errorf("unknown legal document")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
