package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout/internal/payments"
	"checkout/internal/ratelimiter"

	"go.uber.org/zap"
)

var testNow = time.UnixMilli(1700000000123)

// fakeGateway lets handler tests pick the gateway outcome.
type fakeGateway struct {
	initiateResp payments.PaymentResponse
	initiateErr  error
	verifyResp   payments.PaymentVerifyResponse
	verifyErr    error

	lastInitiate payments.PaymentRequest
	lastVerify   payments.PaymentVerifyRequest
}

func (f *fakeGateway) InitiatePayment(_ context.Context, req payments.PaymentRequest) (payments.PaymentResponse, error) {
	f.lastInitiate = req
	return f.initiateResp, f.initiateErr
}

func (f *fakeGateway) VerifyPayment(_ context.Context, req payments.PaymentVerifyRequest) (payments.PaymentVerifyResponse, error) {
	f.lastVerify = req
	return f.verifyResp, f.verifyErr
}

func newTestApplication(t *testing.T, cfg config, gateway payments.PaymentGateway) *application {
	t.Helper()

	manager := payments.NewPaymentManager()
	if gateway != nil {
		manager.RegisterGateway(payments.PayPayGateway, gateway)
	}

	if cfg.rateLimiter.RequestsPerTimeFrame == 0 {
		cfg.rateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Minute}
	}

	return &application{
		config:      cfg,
		logger:      zap.NewNop().Sugar(),
		payments:    manager,
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
		now:         func() time.Time { return testNow },
	}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
