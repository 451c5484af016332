package middleware

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/infrastructure/auth"
	"remotcyberhelp/internal/infrastructure/captcha"
	"remotcyberhelp/internal/infrastructure/ratelimit"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/constants"
	"remotcyberhelp/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s stubVerifier) VerifyAccess(string) (*auth.Claims, error) { return s.claims, s.err }

type stubEnforcer struct {
	allow bool
	err   error
}

func (s stubEnforcer) Enforce(string, string, string) (bool, error) { return s.allow, s.err }

type stubCaptcha struct {
	result *captcha.Result
	err    error
	tokens []string
}

func (s *stubCaptcha) Verify(_ context.Context, token, _ string) (*captcha.Result, error) {
	s.tokens = append(s.tokens, token)
	return s.result, s.err
}

type countingRecorder struct {
	limited  []string
	rejected []string
}

func (r *countingRecorder) RateLimited(action string) { r.limited = append(r.limited, action) }
func (r *countingRecorder) BotRejected(reason string) { r.rejected = append(r.rejected, reason) }

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, stderrors.New("redis down")
}
func (failingLimiter) Reset(context.Context, string) error { return nil }

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func identityEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(constants.ContextKeyUserID),
			"role":    c.GetString(constants.ContextKeyUserRole),
		})
	})
	r.Any("/t", handlers...)
	return r
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	claims := &auth.Claims{UserID: "u1", Email: "a@b.co", Role: authorization.RoleAdmin}

	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
	}{
		{"missing header", "", stubVerifier{claims: claims}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{claims: claims}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubVerifier{err: stderrors.New("bad")}, http.StatusUnauthorized},
		{"valid token", "Bearer good", stubVerifier{claims: claims}, http.StatusOK},
		{"lowercase scheme", "bearer good", stubVerifier{claims: claims}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(tt.verifier, logger.NewNopLogger())
			req := httptest.NewRequest(http.MethodGet, "/t", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(identityEngine(m.RequireAuth()), req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
				assert.Contains(t, w.Body.String(), `"role":"admin"`)
			}
		})
	}
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{err: stderrors.New("expired")}, logger.NewNopLogger())
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("Authorization", "Bearer expired")

	w := serve(identityEngine(m.OptionalAuth()), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestPermissionMiddleware_RequirePermission(t *testing.T) {
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(constants.ContextKeyUserRole, role)
			}
		}
	}

	tests := []struct {
		name       string
		role       string
		enforcer   stubEnforcer
		wantStatus int
	}{
		{"no identity", "", stubEnforcer{allow: true}, http.StatusUnauthorized},
		{"denied", "user", stubEnforcer{allow: false}, http.StatusForbidden},
		{"enforcer error", "admin", stubEnforcer{err: stderrors.New("boom")}, http.StatusInternalServerError},
		{"allowed", "admin", stubEnforcer{allow: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPermissionMiddleware(tt.enforcer, logger.NewNopLogger())
			engine := identityEngine(setRole(tt.role), m.RequirePermission("ticket", "manage"))
			w := serve(engine, httptest.NewRequest(http.MethodGet, "/t", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRateLimitMiddleware_Limit(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled: true,
		Actions: map[string]config.RateLimitRule{ActionContact: {Limit: 2, WindowSeconds: 60}},
	}
	rec := &countingRecorder{}
	m := NewRateLimitMiddleware(ratelimit.NewMemoryRateLimiter(), cfg, rec, logger.NewNopLogger())
	engine := identityEngine(m.Limit(ActionContact))

	newReq := func(ua string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/t", nil)
		req.Header.Set("User-Agent", ua)
		return req
	}

	assert.Equal(t, http.StatusOK, serve(engine, newReq("a")).Code)
	assert.Equal(t, http.StatusOK, serve(engine, newReq("a")).Code)

	w := serve(engine, newReq("a"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{ActionContact}, rec.limited)

	// a different browser signal is a different fingerprint
	assert.Equal(t, http.StatusOK, serve(engine, newReq("b")).Code)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	cfg := &config.RateLimitConfig{Enabled: true}
	m := NewRateLimitMiddleware(failingLimiter{}, cfg, nil, logger.NewNopLogger())
	engine := identityEngine(m.Limit(ActionLogin))

	for i := 0; i < 20; i++ {
		w := serve(engine, httptest.NewRequest(http.MethodPost, "/t", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	m := NewRateLimitMiddleware(failingLimiter{}, &config.RateLimitConfig{Enabled: false}, nil, logger.NewNopLogger())
	w := serve(identityEngine(m.Limit(ActionTicket)), httptest.NewRequest(http.MethodPost, "/t", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func newBotMiddleware(verifier captcha.Verifier, rc *config.RecaptchaConfig, rec BotRecorder, now time.Time) *BotProtectionMiddleware {
	m := NewBotProtectionMiddleware(&config.BotProtectionConfig{
		HoneypotFields:  []string{"website", "_hp"},
		MinFillSeconds:  3,
		MaxFormAgeHours: 24,
	}, rc, verifier, rec, logger.NewNopLogger())
	m.now = func() time.Time { return now }
	return m
}

func echoBodyEngine(m *BotProtectionMiddleware) *gin.Engine {
	r := gin.New()
	r.POST("/t", m.Protect(), func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})
	return r
}

func TestBotProtectionMiddleware_FormChecks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ms := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason string
	}{
		{"clean submission", fmt.Sprintf(`{"name":"Jane","_formStartedAt":%d}`, ms(time.Minute)), http.StatusOK, ""},
		{"no timestamp", `{"name":"Jane"}`, http.StatusOK, ""},
		{"honeypot filled", `{"name":"Jane","website":"http://spam"}`, http.StatusBadRequest, "honeypot"},
		{"second honeypot", `{"_hp":"x"}`, http.StatusBadRequest, "honeypot"},
		{"too fast", fmt.Sprintf(`{"_formStartedAt":%d}`, ms(time.Second)), http.StatusBadRequest, "too_fast"},
		{"too old", fmt.Sprintf(`{"_formStartedAt":"%d"}`, ms(25*time.Hour)), http.StatusBadRequest, "form_expired"},
		{"malformed json passes through", `{"name":`, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &countingRecorder{}
			m := newBotMiddleware(nil, nil, rec, now)
			req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(tt.body))
			w := serve(echoBodyEngine(m), req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantReason != "" {
				assert.Equal(t, []string{tt.wantReason}, rec.rejected)
			} else {
				assert.Equal(t, tt.body, w.Body.String(), "body must reach the handler intact")
			}
		})
	}
}

func TestBotProtectionMiddleware_Recaptcha(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		verifier   *stubCaptcha
		failOpen   bool
		wantStatus int
	}{
		{"passes", &stubCaptcha{result: &captcha.Result{Success: true}}, false, http.StatusOK},
		{"fails", &stubCaptcha{result: &captcha.Result{Success: false}}, false, http.StatusBadRequest},
		{"unavailable fail open", &stubCaptcha{err: captcha.ErrUnavailable}, true, http.StatusOK},
		{"unavailable fail closed", &stubCaptcha{err: captcha.ErrUnavailable}, false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &config.RecaptchaConfig{Enabled: true, FailOpen: tt.failOpen}
			m := newBotMiddleware(tt.verifier, rc, nil, now)
			w := serve(echoBodyEngine(m), httptest.NewRequest(http.MethodPost, "/t", bytes.NewBufferString(`{"recaptchaToken":"tok"}`)))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, []string{"tok"}, tt.verifier.tokens)
		})
	}
}

func TestBotProtectionMiddleware_RecaptchaHeaderToken(t *testing.T) {
	v := &stubCaptcha{result: &captcha.Result{Success: true}}
	m := newBotMiddleware(v, &config.RecaptchaConfig{Enabled: true}, nil, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(`{}`))
	req.Header.Set("X-Recaptcha-Token", "from-header")
	w := serve(echoBodyEngine(m), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"from-header"}, v.tokens)
}

func TestRequestID(t *testing.T) {
	engine := identityEngine(RequestID())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = serve(engine, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	engine := identityEngine(CORS([]string{"https://remotcyberhelp.co.ke"}))

	req := httptest.NewRequest(http.MethodOptions, "/t", nil)
	req.Header.Set("Origin", "https://remotcyberhelp.co.ke")
	w := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://remotcyberhelp.co.ke", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/t", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
