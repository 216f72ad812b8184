package payments

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials   = errors.New("payments: missing gateway credentials")
	ErrGatewayNotRegistered = errors.New("payments: gateway not registered")
	ErrMissingPaymentID     = errors.New("payments: merchant payment id is required")
)

// ProviderError is returned when the provider answers with a non-2xx status.
// The response is kept so callers can hand it back untouched.
type ProviderError struct {
	Op         string
	StatusCode int
	Code       string // resultInfo.code, when present
	Body       json.RawMessage
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: http=%d code=%s", e.Op, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s: http=%d", e.Op, e.StatusCode)
}
