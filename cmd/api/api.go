package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout/docs" //this is required to generate swagger docs
	"checkout/internal/payments"
	"checkout/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// paymentService is what the handlers need from payments.PaymentManager.
type paymentService interface {
	InitiatePayment(ctx context.Context, method string, req payments.PaymentRequest) (payments.PaymentResponse, error)
	VerifyPayment(ctx context.Context, method string, req payments.PaymentVerifyRequest) (payments.PaymentVerifyResponse, error)
	Ready(method string) error
}

type application struct {
	config      config
	logger      *zap.SugaredLogger
	payments    paymentService
	rateLimiter ratelimiter.Limiter
	now         func() time.Time
}

type config struct {
	addr        string
	env         string
	apiURL      string
	baseURL     string
	paypay      paypayConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type paypayConfig struct {
	apiKey     string
	apiSecret  string
	merchantID string
	env        string
	apiBaseURL string
	returnURL  string
	timeout    time.Duration
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// PayPay calls are bounded by the gateway client timeout, this is the outer limit
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", app.homePageHandler)
	r.Get("/paypay/result", app.resultPageHandler)

	r.Route("/api/paypay", func(r chi.Router) {
		r.Use(app.RateLimiterMiddleware)
		r.Post("/create", app.createPaymentHandler)
		r.Get("/status", app.paymentStatusHandler)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		// relative, so the UI works whatever EXTERNAL_URL looks like
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/v1/swagger/doc.json")))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
