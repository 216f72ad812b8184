package main

import (
	"net/http"

	"checkout/internal/payments"
)

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports service version and which PayPay API it talks to
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/v1/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	paypayAPI := app.config.paypay.apiBaseURL
	if paypayAPI == "" {
		paypayAPI = payments.PayPayBaseURL(app.config.paypay.env)
	}

	data := map[string]string{
		"status":     "ok",
		"env":        app.config.env,
		"version":    version,
		"paypay_api": paypayAPI,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
