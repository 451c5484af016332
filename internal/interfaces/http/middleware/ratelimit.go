package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/infrastructure/ratelimit"
	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/constants"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/utils"
)

// Rate limited actions.
const (
	ActionTicket       = "ticket"
	ActionContact      = "contact"
	ActionConsultation = "consultation"
	ActionGovernment   = "government"
	ActionNewsletter   = "newsletter"
	ActionLogin        = "login"
	ActionReset        = "reset"
)

type RateLimitRecorder interface {
	RateLimited(action string)
}

type RateLimitMiddleware struct {
	limiter  ratelimit.RateLimiter
	cfg      *config.RateLimitConfig
	recorder RateLimitRecorder
	logger   logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, cfg *config.RateLimitConfig, recorder RateLimitRecorder, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
	}
}

// Limit counts submissions per client fingerprint for one action. The
// fingerprint is a hash of IP and a couple of browser headers, which keeps
// honest users apart behind a shared NAT but is trivially spoofed.
func (m *RateLimitMiddleware) Limit(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg == nil || !m.cfg.Enabled || m.limiter == nil {
			c.Next()
			return
		}

		rule := m.cfg.Rule(action)
		key := action + ":" + Fingerprint(c)

		decision, err := m.limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window())
		if err != nil {
			m.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "action", action)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			if m.recorder != nil {
				m.recorder.RateLimited(action)
			}
			m.logger.Warnw("rate limit exceeded", "action", action, "client_ip", c.ClientIP(), "count", decision.Count)
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("Too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// Fingerprint identifies a client for rate limiting purposes.
func Fingerprint(c *gin.Context) string {
	sum := sha256.Sum256([]byte(c.ClientIP() + "|" +
		c.GetHeader(constants.HeaderUserAgent) + "|" +
		c.GetHeader(constants.HeaderAcceptLanguage)))
	return hex.EncodeToString(sum[:16])
}
