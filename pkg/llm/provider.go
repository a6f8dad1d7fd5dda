package llm

import (
	"context"
	"fmt"
)

// Error codes reported by providers. The pipeline only cares that a call
// failed; the codes exist for logs.
const (
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
	ErrCodeRateLimited  = "rate_limited"
	ErrCodeAPIError     = "api_error"
	ErrCodeParseError   = "parse_error"
	ErrCodeUnknown      = "unknown"
)

// ProviderError wraps a provider failure with a stable code.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider error (%s): %s", e.Code, e.Message)
}

func NewProviderError(code, format string, args ...any) *ProviderError {
	return &ProviderError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ClassificationResult carries the classifier output. Intent is a raw
// string here; the pipeline maps it onto its closed set.
type ClassificationResult struct {
	Intent     string
	Confidence float64
}

// ExtractionResult carries the flat entity fields an extractor may find.
// Nil means "not present in the text".
type ExtractionResult struct {
	ContactName    *string
	ContactPhone   *string
	AmountCents    *int64
	DueDate        *string
	BoletoId       *string
	MessageContent *string
}

// Provider is the language-understanding port. Implementations must
// return structured fields only, never free prose, and must surface
// failures as errors instead of degraded text.
type Provider interface {
	// ClassifyIntent classifies normalized user text into one of the
	// assistant's intent strings plus a confidence in [0,1].
	ClassifyIntent(ctx context.Context, text string) (*ClassificationResult, error)

	// ExtractEntities pulls intent-scoped entities out of the text.
	// Which fields matter depends on the intent: creation wants contact
	// name, amount and due date; cancel/status want the boleto id;
	// messaging wants contact name and content.
	ExtractEntities(ctx context.Context, text string, intent string) (*ExtractionResult, error)
}
