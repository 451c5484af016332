package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/logger"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "secret", r.PostForm.Get("secret"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newVerifier(url string, minScore float64) *RecaptchaVerifier {
	return NewRecaptchaVerifier(&config.RecaptchaConfig{
		SecretKey:      "secret",
		VerifyURL:      url,
		MinScore:       minScore,
		TimeoutSeconds: 2,
	}, logger.NewNopLogger())
}

func TestRecaptchaVerifier_Verify(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		minScore    float64
		wantSuccess bool
	}{
		{"accepted", `{"success":true,"score":0.9,"action":"contact"}`, 0.5, true},
		{"rejected by provider", `{"success":false,"error-codes":["invalid-input-response"]}`, 0.5, false},
		{"low score", `{"success":true,"score":0.2}`, 0.5, false},
		{"score ignored without threshold", `{"success":true,"score":0.1}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)
			res, err := newVerifier(srv.URL, tt.minScore).Verify(context.Background(), "tok", "1.2.3.4")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
		})
	}
}

func TestRecaptchaVerifier_EmptyTokenSkipsCall(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"success":true}`)
	res, err := newVerifier(srv.URL, 0).Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Zero(t, calls.Load())
}

func TestRecaptchaVerifier_ProviderErrorIsUnavailable(t *testing.T) {
	srv, calls := newServer(t, http.StatusInternalServerError, `oops`)
	v := newVerifier(srv.URL, 0)

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), "tok", "")
		assert.True(t, errors.Is(err, ErrUnavailable))
	}
	assert.Equal(t, int32(3), calls.Load())

	// Breaker is open now; the provider is not called again.
	_, err := v.Verify(context.Background(), "tok", "")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, int32(3), calls.Load())
}
