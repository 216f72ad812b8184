package payments

import "encoding/json"

type PaymentRequest struct {
	MerchantPaymentID string
	Amount            int64 // whole yen
	Currency          string
	Description       string
}

// PaymentResponse carries the provider reply verbatim. Body is the raw JSON
// document, or JSON null when the provider did not return JSON.
type PaymentResponse struct {
	MerchantPaymentID string
	HTTPStatus        int
	PaymentURL        string
	Body              json.RawMessage
}

type PaymentVerifyRequest struct {
	MerchantPaymentID string
}

type PaymentVerifyResponse struct {
	HTTPStatus int
	State      string // CREATED, COMPLETED, EXPIRED, ... as reported by the provider
	Body       json.RawMessage
}
