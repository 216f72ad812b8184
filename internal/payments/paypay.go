package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	PayPayGateway = "paypay"

	paypaySandboxURL    = "https://stg-api.sandbox.paypay.ne.jp"
	paypayProductionURL = "https://api.paypay.ne.jp"

	paypayCodesPath        = "/v2/codes"
	paypayCodePaymentsPath = "/v2/codes/payments/"

	// PayPay uses it to pick the browser flow for the web cashier.
	paypayUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultPayPayTimeout = 10 * time.Second
)

type PayPayConfig struct {
	APIKey     string
	APISecret  string
	MerchantID string
	Env        string // "prod" or "production" selects the live API
	BaseURL    string // overrides Env when set
	ReturnURL  string // result page, merchantPaymentId is appended
	Timeout    time.Duration
}

// PayPayBaseURL maps PAYPAY_ENV to an API host. Anything but production
// goes to the sandbox.
func PayPayBaseURL(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return paypayProductionURL
	}
	return paypaySandboxURL
}

type PayPayAdapter struct {
	MerchantID string
	ReturnURL  string
	BaseURL    string
	Now        func() time.Time
	signer     *HMACSigner
	httpClient *http.Client
}

func NewPayPayAdapter(cfg PayPayConfig) *PayPayAdapter {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = PayPayBaseURL(cfg.Env)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPayPayTimeout
	}

	return &PayPayAdapter{
		MerchantID: cfg.MerchantID,
		ReturnURL:  cfg.ReturnURL,
		BaseURL:    base,
		Now:        time.Now,
		signer:     NewHMACSigner(cfg.APIKey, cfg.APISecret),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether all three credentials are present.
func (p *PayPayAdapter) Configured() bool {
	return p.signer.APIKey != "" && p.signer.APISecret != "" && p.MerchantID != ""
}

type paypayMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Field order is kept stable so the signed hash is reproducible.
type paypayCreateCodeRequest struct {
	MerchantPaymentID string      `json:"merchantPaymentId"`
	Amount            paypayMoney `json:"amount"`
	CodeType          string      `json:"codeType"`
	OrderDescription  string      `json:"orderDescription"`
	IsAuthorization   bool        `json:"isAuthorization"`
	RedirectURL       string      `json:"redirectUrl"`
	RedirectType      string      `json:"redirectType"`
	UserAgent         string      `json:"userAgent"`
	RequestedAt       int64       `json:"requestedAt"`
}

// paypayEnvelope picks the few fields we read out of a PayPay reply. The
// body itself is always passed on untouched.
type paypayEnvelope struct {
	ResultInfo struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"resultInfo"`
	Data struct {
		URL    string `json:"url"`
		Link   string `json:"link"`
		Status string `json:"status"`
		State  string `json:"state"`
	} `json:"data"`
}

func parseEnvelope(raw json.RawMessage) paypayEnvelope {
	var env paypayEnvelope
	// data may be null or a non-object on errors; a partial decode is fine
	_ = json.Unmarshal(raw, &env)
	return env
}

// InitiatePayment creates a web cashier payment code (POST /v2/codes).
func (p *PayPayAdapter) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	if !p.Configured() {
		return PaymentResponse{}, ErrMissingCredentials
	}
	if strings.TrimSpace(req.MerchantPaymentID) == "" {
		return PaymentResponse{}, ErrMissingPaymentID
	}

	currency := req.Currency
	if currency == "" {
		currency = "JPY"
	}

	payload := paypayCreateCodeRequest{
		MerchantPaymentID: req.MerchantPaymentID,
		Amount:            paypayMoney{Amount: req.Amount, Currency: currency},
		CodeType:          "ORDER_QR",
		OrderDescription:  req.Description,
		IsAuthorization:   false,
		RedirectURL:       addQuery(p.ReturnURL, "merchantPaymentId", req.MerchantPaymentID),
		RedirectType:      "WEB_LINK",
		UserAgent:         paypayUserAgent,
		RequestedAt:       p.Now().Unix(),
	}

	body, err := marshalBody(payload)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("paypay create code encode: %w", err)
	}

	status, raw, err := p.do(ctx, http.MethodPost, paypayCodesPath, body)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("paypay create code request: %w", err)
	}

	env := parseEnvelope(raw)
	res := PaymentResponse{
		MerchantPaymentID: req.MerchantPaymentID,
		HTTPStatus:        status,
		Body:              raw,
	}
	if !isSuccess(status) {
		return res, &ProviderError{Op: "paypay create code", StatusCode: status, Code: env.ResultInfo.Code, Body: raw}
	}

	res.PaymentURL = env.Data.URL
	if res.PaymentURL == "" {
		res.PaymentURL = env.Data.Link
	}
	return res, nil
}

// VerifyPayment looks up a code payment (GET /v2/codes/payments/{id}).
// It reports what the provider says; a pending payment is not an error.
func (p *PayPayAdapter) VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	if !p.Configured() {
		return PaymentVerifyResponse{}, ErrMissingCredentials
	}
	if strings.TrimSpace(req.MerchantPaymentID) == "" {
		return PaymentVerifyResponse{}, ErrMissingPaymentID
	}

	status, raw, err := p.do(ctx, http.MethodGet, paypayCodePaymentsPath+escapeComponent(req.MerchantPaymentID), nil)
	if err != nil {
		return PaymentVerifyResponse{}, fmt.Errorf("paypay payment details request: %w", err)
	}

	env := parseEnvelope(raw)
	res := PaymentVerifyResponse{
		HTTPStatus: status,
		Body:       raw,
	}
	if !isSuccess(status) {
		return res, &ProviderError{Op: "paypay payment details", StatusCode: status, Code: env.ResultInfo.Code, Body: raw}
	}

	res.State = env.Data.Status
	if res.State == "" {
		res.State = env.Data.State
	}
	return res, nil
}

// do signs and sends one request. The returned body is valid JSON: the
// provider's document, or null.
func (p *PayPayAdapter) do(ctx context.Context, method, path string, body []byte) (int, json.RawMessage, error) {
	auth := p.signer.Sign(method, path, body)

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Authorization", auth.Authorization)
	httpReq.Header.Set("X-ASSUME-MERCHANT", p.MerchantID)
	if auth.ContentType != "" {
		httpReq.Header.Set("Content-Type", auth.ContentType)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		raw = []byte("null")
	}
	return resp.StatusCode, json.RawMessage(raw), nil
}

// marshalBody encodes without HTML escaping so descriptions reach PayPay as typed.
func marshalBody(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// escapeComponent percent-encodes everything except A-Z a-z 0-9 and
// -_.!~*'(), the set a browser's encodeURIComponent leaves alone. The
// result is both signed and sent.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func addQuery(base, key, val string) string {
	u, err := url.Parse(base)
	if err != nil {
		if strings.Contains(base, "?") {
			return base + "&" + url.QueryEscape(key) + "=" + url.QueryEscape(val)
		}
		return base + "?" + url.QueryEscape(key) + "=" + url.QueryEscape(val)
	}
	q := u.Query()
	q.Set(key, val)
	u.RawQuery = q.Encode()
	return u.String()
}
