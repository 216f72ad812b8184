package payments_test

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"checkout/internal/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "a_test_key"
	testAPISecret = "super-secret"
	testNonce     = "0123456789abcdef0123456789abcdef"
	testEpoch     = int64(1700000000)
)

func expectedMAC(secret string, lines ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func expectedBodyHash(body string) string {
	h := md5.New()
	h.Write([]byte("application/json;charset=UTF-8"))
	h.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func TestBuildHMACAuthHeader_WithBody(t *testing.T) {
	body := `{"merchantPaymentId":"mp_1","amount":{"amount":10,"currency":"JPY"}}`

	auth := payments.BuildHMACAuthHeader(testAPIKey, testAPISecret, "post", "/v2/codes", []byte(body), testNonce, testEpoch)

	hash := expectedBodyHash(body)
	mac := expectedMAC(testAPISecret, "/v2/codes", "POST", testNonce, "1700000000", "application/json;charset=UTF-8", hash)

	assert.Equal(t, "hmac OPA-Auth:a_test_key:"+mac+":"+testNonce+":1700000000:"+hash, auth.Authorization)
	assert.Equal(t, "application/json;charset=UTF-8", auth.ContentType)
}

func TestBuildHMACAuthHeader_WithoutBody(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   []byte
	}{
		{"GET ignores body", "GET", []byte(`{"x":1}`)},
		{"GET without body", "GET", nil},
		{"DELETE", "DELETE", []byte(`{"x":1}`)},
		{"POST with empty body", "POST", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := payments.BuildHMACAuthHeader(testAPIKey, testAPISecret, tt.method, "/v2/codes/payments/mp_1", tt.body, testNonce, testEpoch)

			mac := expectedMAC(testAPISecret, "/v2/codes/payments/mp_1", tt.method, testNonce, "1700000000", "empty", "empty")

			assert.Equal(t, "hmac OPA-Auth:a_test_key:"+mac+":"+testNonce+":1700000000:empty", auth.Authorization)
			assert.Empty(t, auth.ContentType)
		})
	}
}

func TestBuildHMACAuthHeader_PutAndPatchSignBody(t *testing.T) {
	for _, method := range []string{"PUT", "patch"} {
		auth := payments.BuildHMACAuthHeader(testAPIKey, testAPISecret, method, "/v2/x", []byte(`{}`), testNonce, testEpoch)
		assert.Equal(t, "application/json;charset=UTF-8", auth.ContentType, method)
		assert.True(t, strings.HasSuffix(auth.Authorization, ":"+expectedBodyHash(`{}`)), method)
	}
}

func TestBuildHMACAuthHeader_SecretChangesMAC(t *testing.T) {
	a := payments.BuildHMACAuthHeader(testAPIKey, "one", "GET", "/v2/x", nil, testNonce, testEpoch)
	b := payments.BuildHMACAuthHeader(testAPIKey, "two", "GET", "/v2/x", nil, testNonce, testEpoch)

	assert.NotEqual(t, a.Authorization, b.Authorization)
}

func TestHMACSigner_Sign(t *testing.T) {
	t.Run("uses injected clock and nonce", func(t *testing.T) {
		signer := payments.NewHMACSigner(testAPIKey, testAPISecret)
		signer.Now = func() time.Time { return time.Unix(testEpoch, 0) }
		signer.Nonce = func() string { return testNonce }

		got := signer.Sign("GET", "/v2/codes/payments/mp_1", nil)
		want := payments.BuildHMACAuthHeader(testAPIKey, testAPISecret, "GET", "/v2/codes/payments/mp_1", nil, testNonce, testEpoch)

		assert.Equal(t, want, got)
	})

	t.Run("defaults produce fresh hex nonce and current epoch", func(t *testing.T) {
		signer := payments.NewHMACSigner(testAPIKey, testAPISecret)

		before := time.Now().Unix()
		first := signer.Sign("GET", "/v2/x", nil)
		second := signer.Sign("GET", "/v2/x", nil)
		after := time.Now().Unix()

		parts := strings.Split(strings.TrimPrefix(first.Authorization, "hmac OPA-Auth:"), ":")
		require.Len(t, parts, 5)
		assert.Equal(t, testAPIKey, parts[0])
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), parts[2])
		assert.Equal(t, "empty", parts[4])

		epoch, err := strconv.ParseInt(parts[3], 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, epoch, before)
		assert.LessOrEqual(t, epoch, after)

		assert.NotEqual(t, first.Authorization, second.Authorization, "nonce must change per request")
	})
}
