package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		fallback string
		want     string
	}{
		{"default", "", "", "http://localhost:8080"},
		{"BASE_URL", "https://shop.example", "https://ignored.example", "https://shop.example"},
		{"NEXT_PUBLIC_BASE_URL fallback", "", "https://next.example", "https://next.example"},
		{"blank BASE_URL falls back", "   ", "https://next.example", "https://next.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BASE_URL", tt.baseURL)
			t.Setenv("NEXT_PUBLIC_BASE_URL", tt.fallback)

			assert.Equal(t, tt.want, LoadBaseURL())
		})
	}
}

func TestLoadPayPayConfig(t *testing.T) {
	t.Run("reads PAYPAY_* variables", func(t *testing.T) {
		t.Setenv("PAYPAY_API_KEY", "key")
		t.Setenv("PAYPAY_API_SECRET", "secret")
		t.Setenv("PAYPAY_MERCHANT_ID", "m-1")
		t.Setenv("PAYPAY_ENV", "production")
		t.Setenv("PAYPAY_BASE_URL", "http://127.0.0.1:9999/")
		t.Setenv("PAYPAY_TIMEOUT", "3s")

		cfg := LoadPayPayConfig("https://shop.example/")

		assert.Equal(t, paypayConfig{
			apiKey:     "key",
			apiSecret:  "secret",
			merchantID: "m-1",
			env:        "production",
			apiBaseURL: "http://127.0.0.1:9999/",
			returnURL:  "https://shop.example/paypay/result",
			timeout:    3 * time.Second,
		}, cfg)

		adapter := newPayPayAdapter(cfg)
		assert.Equal(t, "http://127.0.0.1:9999", adapter.BaseURL, "PAYPAY_BASE_URL overrides PAYPAY_ENV")
		assert.Equal(t, "https://shop.example/paypay/result", adapter.ReturnURL)
		assert.True(t, adapter.Configured())
	})

	t.Run("env picks the API host without override", func(t *testing.T) {
		t.Setenv("PAYPAY_ENV", "prod")
		t.Setenv("PAYPAY_BASE_URL", "")

		adapter := newPayPayAdapter(LoadPayPayConfig("http://localhost:8080"))
		assert.Equal(t, "https://api.paypay.ne.jp", adapter.BaseURL)
	})

	timeouts := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"valid", "250ms", 250 * time.Millisecond},
		{"not a duration", "ten", 10 * time.Second},
		{"zero", "0s", 10 * time.Second},
		{"negative", "-1s", 10 * time.Second},
	}
	for _, tt := range timeouts {
		t.Run("timeout "+tt.name, func(t *testing.T) {
			t.Setenv("PAYPAY_TIMEOUT", tt.value)

			assert.Equal(t, tt.want, LoadPayPayConfig("http://localhost:8080").timeout)
		})
	}

	t.Run("missing credentials are allowed", func(t *testing.T) {
		t.Setenv("PAYPAY_API_KEY", "")
		t.Setenv("PAYPAY_API_SECRET", "")
		t.Setenv("PAYPAY_MERCHANT_ID", "")

		assert.False(t, newPayPayAdapter(LoadPayPayConfig("http://localhost:8080")).Configured())
	})
}

func TestLoadRateLimiterConfig(t *testing.T) {
	tests := []struct {
		name        string
		count       string
		enabled     string
		wantCount   int
		wantEnabled bool
	}{
		{"valid", "50", "true", 50, true},
		{"zero count uses default", "0", "false", 20, false},
		{"negative count uses default", "-3", "1", 20, true},
		{"garbage", "many", "maybe", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RATELIMITER_REQUESTS_COUNT", tt.count)
			t.Setenv("RATE_LIMITER_ENABLED", tt.enabled)

			cfg := LoadRateLimiterConfig()
			assert.Equal(t, tt.wantCount, cfg.RequestsPerTimeFrame)
			assert.Equal(t, tt.wantEnabled, cfg.Enabled)
			assert.Equal(t, 5*time.Second, cfg.TimeFrame)
		})
	}
}
