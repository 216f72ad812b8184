package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"checkout/internal/payments"
)

const (
	maxCreateBodyBytes = 1_048_576

	defaultAmount      = 10
	defaultDescription = "PayPay sandbox test order"

	paypayCallTimeout = 15 * time.Second
)

var paypayStats = expvar.NewMap("paypay")

// CreatePaymentInput is the validated form of the create-payment body.
type CreatePaymentInput struct {
	Amount      int64  `json:"amount" validate:"gte=1,lte=100000000"`
	Description string `json:"description" validate:"max=255"`
}

type CreatePaymentResponse struct {
	MerchantPaymentID string          `json:"merchantPaymentId"`
	PayPayStatus      int             `json:"payPayStatus"`
	PaymentURL        string          `json:"paymentUrl,omitempty"`
	Body              json.RawMessage `json:"body" swaggertype:"object"`
}

type PaymentStatusResponse struct {
	PayPayStatus int             `json:"payPayStatus"`
	PaymentState string          `json:"paymentState,omitempty"`
	Body         json.RawMessage `json:"body" swaggertype:"object"`
}

type GatewayErrorResponse struct {
	Error   string          `json:"error"`
	Status  int             `json:"status,omitempty"`
	Body    json.RawMessage `json:"body,omitempty" swaggertype:"object"`
	Details string          `json:"details,omitempty"`
}

// parseCreatePayment reads {amount, description}. A missing body, or one
// that is not a JSON object, means defaults. Zero or empty values also fall
// back to the defaults. A body cut off by the size cap is an error.
func parseCreatePayment(r io.Reader) (CreatePaymentInput, error) {
	in := CreatePaymentInput{Amount: defaultAmount, Description: defaultDescription}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return in, err
		}
		return in, nil
	}

	if raw, ok := fields["amount"]; ok && !isJSONNull(raw) {
		amount, err := parseAmount(raw)
		if err != nil {
			return in, err
		}
		if amount != 0 {
			in.Amount = amount
		}
	}

	if raw, ok := fields["description"]; ok && !isJSONNull(raw) {
		var desc string
		if err := json.Unmarshal(raw, &desc); err != nil {
			return in, fmt.Errorf("description must be a string")
		}
		if strings.TrimSpace(desc) != "" {
			in.Description = desc
		}
	}

	return in, nil
}

// parseAmount accepts 100, 100.0, "100" and "". JPY has no minor unit, so
// fractions are rejected.
func parseAmount(raw json.RawMessage) (int64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("amount must be a number")
		}
		s = n.String()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a number")
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("amount must be a whole number of yen")
	}
	return int64(f), nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// createPaymentHandler godoc
//
//	@Summary		Create a PayPay payment
//	@Description	Creates a web cashier payment code and returns the PayPay response untouched
//	@Tags			paypay
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreatePaymentInput	false	"Amount in JPY (default 10) and order description"
//	@Success		200		{object}	CreatePaymentResponse
//	@Failure		400		{object}	GatewayErrorResponse	"Invalid amount or description"
//	@Failure		413		{object}	GatewayErrorResponse	"Request body too large"
//	@Failure		429		{object}	GatewayErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	GatewayErrorResponse	"Missing credentials, PayPay error or internal error"
//	@Router			/api/paypay/create [post]
func (app *application) createPaymentHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.payments.Ready(payments.PayPayGateway); err != nil {
		app.gatewayErrorResponse(w, r, "PayPay create code failed", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)

	in, err := parseCreatePayment(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			app.payloadTooLargeResponse(w, r, err)
			return
		}
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), paypayCallTimeout)
	defer cancel()

	merchantPaymentID := fmt.Sprintf("mp_%d", app.now().UnixMilli())

	resp, err := app.payments.InitiatePayment(ctx, payments.PayPayGateway, payments.PaymentRequest{
		MerchantPaymentID: merchantPaymentID,
		Amount:            in.Amount,
		Currency:          "JPY",
		Description:       in.Description,
	})
	if err != nil {
		paypayStats.Add("create_failed", 1)
		app.gatewayErrorResponse(w, r, "PayPay create code failed", err)
		return
	}
	paypayStats.Add("create_ok", 1)

	app.logger.Infow("paypay payment created",
		"merchant_payment_id", merchantPaymentID,
		"amount", in.Amount,
		"paypay_status", resp.HTTPStatus,
	)

	writeJSON(w, http.StatusOK, &CreatePaymentResponse{
		MerchantPaymentID: merchantPaymentID,
		PayPayStatus:      resp.HTTPStatus,
		PaymentURL:        resp.PaymentURL,
		Body:              resp.Body,
	})
}

// paymentStatusHandler godoc
//
//	@Summary		Get PayPay payment status
//	@Description	Looks up a code payment by merchantPaymentId and returns the PayPay response untouched
//	@Tags			paypay
//	@Produce		json
//	@Param			merchantPaymentId	query		string	true	"Merchant payment id returned by create"
//	@Success		200					{object}	PaymentStatusResponse
//	@Failure		400					{object}	GatewayErrorResponse	"merchantPaymentId is required"
//	@Failure		429					{object}	GatewayErrorResponse	"Rate limit exceeded"
//	@Failure		500					{object}	GatewayErrorResponse	"Missing credentials, PayPay error or internal error"
//	@Router			/api/paypay/status [get]
func (app *application) paymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	merchantPaymentID := r.URL.Query().Get("merchantPaymentId")
	if strings.TrimSpace(merchantPaymentID) == "" {
		app.badRequestResponse(w, r, errors.New("merchantPaymentId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), paypayCallTimeout)
	defer cancel()

	resp, err := app.payments.VerifyPayment(ctx, payments.PayPayGateway, payments.PaymentVerifyRequest{
		MerchantPaymentID: merchantPaymentID,
	})
	if err != nil {
		paypayStats.Add("status_failed", 1)
		app.gatewayErrorResponse(w, r, "PayPay get payment details failed", err)
		return
	}
	paypayStats.Add("status_ok", 1)

	writeJSON(w, http.StatusOK, &PaymentStatusResponse{
		PayPayStatus: resp.HTTPStatus,
		PaymentState: resp.State,
		Body:         resp.Body,
	})
}

// gatewayErrorResponse always answers 500: the client cannot fix a PayPay
// rejection, it can only read it.
func (app *application) gatewayErrorResponse(w http.ResponseWriter, r *http.Request, failure string, err error) {
	var perr *payments.ProviderError

	switch {
	case errors.Is(err, payments.ErrMissingCredentials):
		app.logger.Errorw("paypay credentials missing", "method", r.Method, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, &GatewayErrorResponse{
			Error: "Missing PAYPAY_* env variables",
		})

	case errors.As(err, &perr):
		app.logger.Errorw("paypay rejected request",
			"method", r.Method,
			"path", r.URL.Path,
			"paypay_status", perr.StatusCode,
			"code", perr.Code,
		)
		writeJSON(w, http.StatusInternalServerError, &GatewayErrorResponse{
			Error:  failure,
			Status: perr.StatusCode,
			Body:   perr.Body,
		})

	default:
		app.logger.Errorw("paypay call failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, &GatewayErrorResponse{
			Error:   "Internal error",
			Details: err.Error(),
		})
	}
}
