package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"checkout/internal/payments"
	"checkout/internal/ratelimiter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 20
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// LoadPayPayConfig reads the PAYPAY_* variables. Missing credentials are
// allowed at boot; the API answers 500 until they are set.
func LoadPayPayConfig(baseURL string) paypayConfig {
	timeout := 10 * time.Second
	if val, exists := os.LookupEnv("PAYPAY_TIMEOUT"); exists {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			timeout = d
		} else {
			fmt.Println("Invalid PAYPAY_TIMEOUT, defaulting to", timeout)
		}
	}

	return paypayConfig{
		apiKey:     os.Getenv("PAYPAY_API_KEY"),
		apiSecret:  os.Getenv("PAYPAY_API_SECRET"),
		merchantID: os.Getenv("PAYPAY_MERCHANT_ID"),
		env:        os.Getenv("PAYPAY_ENV"),
		apiBaseURL: os.Getenv("PAYPAY_BASE_URL"),
		returnURL:  strings.TrimRight(baseURL, "/") + "/paypay/result",
		timeout:    timeout,
	}
}

// LoadBaseURL is the public origin PayPay redirects back to.
func LoadBaseURL() string {
	return getEnv("BASE_URL", getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:8080"))
}

func newPayPayAdapter(cfg paypayConfig) *payments.PayPayAdapter {
	return payments.NewPayPayAdapter(payments.PayPayConfig{
		APIKey:     cfg.apiKey,
		APISecret:  cfg.apiSecret,
		MerchantID: cfg.merchantID,
		Env:        cfg.env,
		BaseURL:    cfg.apiBaseURL,
		ReturnURL:  cfg.returnURL,
		Timeout:    cfg.timeout,
	})
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if lvl, exists := os.LookupEnv("LOG_LEVEL"); exists {
		if err := level.Set(lvl); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)

	return zap.New(core).Sugar(), nil
}

var version = "0.1.0"

//	@title			PayPay Checkout API
//	@description	Web checkout against the PayPay API: create a payment code and look up its status.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath	/

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded, using process environment:", err)
	}

	baseURL := LoadBaseURL()

	cfg := config{
		addr:    getEnv("ADDR", ":8080"),
		env:     getEnv("ENV", "development"),
		apiURL:  os.Getenv("EXTERNAL_URL"),
		baseURL: baseURL,
		paypay:  LoadPayPayConfig(baseURL),
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	paypay := newPayPayAdapter(cfg.paypay)
	if !paypay.Configured() {
		logger.Warnw("paypay credentials are not set, payment endpoints will fail",
			"vars", "PAYPAY_API_KEY, PAYPAY_API_SECRET, PAYPAY_MERCHANT_ID")
	}
	logger.Infow("paypay gateway configured", "api", paypay.BaseURL, "return_url", cfg.paypay.returnURL)

	manager := payments.NewPaymentManager()
	manager.RegisterGateway(payments.PayPayGateway, paypay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)
	go rateLimiter.Run(ctx)

	app := &application{
		config:      cfg,
		logger:      logger,
		payments:    manager,
		rateLimiter: rateLimiter,
		now:         time.Now,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}
