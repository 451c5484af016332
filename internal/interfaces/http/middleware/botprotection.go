package middleware

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/infrastructure/captcha"
	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/constants"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/utils"
)

const (
	fieldFormStartedAt  = "_formStartedAt"
	fieldRecaptchaToken = "recaptchaToken"

	maxInspectedBody = 1 << 20
)

type BotRecorder interface {
	BotRejected(reason string)
}

type BotProtectionMiddleware struct {
	cfg       *config.BotProtectionConfig
	recaptcha *config.RecaptchaConfig
	verifier  captcha.Verifier
	recorder  BotRecorder
	logger    logger.Interface
	now       func() time.Time
}

func NewBotProtectionMiddleware(
	cfg *config.BotProtectionConfig,
	recaptcha *config.RecaptchaConfig,
	verifier captcha.Verifier,
	recorder BotRecorder,
	logger logger.Interface,
) *BotProtectionMiddleware {
	return &BotProtectionMiddleware{
		cfg:       cfg,
		recaptcha: recaptcha,
		verifier:  verifier,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Protect inspects a public form submission before it reaches the handler.
// The body is read once and restored so binding still works downstream.
func (m *BotProtectionMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInspectedBody))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		fields := map[string]any{}
		if len(bytes.TrimSpace(raw)) > 0 {
			// malformed JSON is left for the handler's binding to report
			_ = json.Unmarshal(raw, &fields)
		}

		if reason, field := m.checkForm(fields); reason != "" {
			m.reject(c, reason, field)
			return
		}

		if m.recaptcha != nil && m.recaptcha.Enabled && m.verifier != nil {
			token := stringField(fields, fieldRecaptchaToken)
			if token == "" {
				token = c.GetHeader(constants.HeaderRecaptchaToken)
			}

			result, err := m.verifier.Verify(c.Request.Context(), token, c.ClientIP())
			switch {
			case err != nil && stderrors.Is(err, captcha.ErrUnavailable) && m.recaptcha.FailOpen:
				m.logger.Warnw("captcha unavailable, allowing request", "error", err, "path", c.FullPath())
			case err != nil:
				m.logger.Warnw("captcha unavailable, rejecting request", "error", err, "path", c.FullPath())
				m.recordReject("captcha_unavailable")
				utils.ErrorResponseWithError(c, errors.NewServiceUnavailableError("Verification service unavailable, please try again"))
				c.Abort()
				return
			case !result.Success:
				m.reject(c, "captcha", fieldRecaptchaToken)
				return
			}
		}

		c.Next()
	}
}

// checkForm returns the rejection reason and offending field, or "" when
// the submission looks human.
func (m *BotProtectionMiddleware) checkForm(fields map[string]any) (string, string) {
	if m.cfg == nil {
		return "", ""
	}

	for _, name := range m.cfg.HoneypotFields {
		if stringField(fields, name) != "" {
			return "honeypot", name
		}
	}

	startedAt, present := formStartedAt(fields)
	if !present {
		if m.cfg.RequireFormStarted {
			return "form_timestamp", fieldFormStartedAt
		}
		return "", ""
	}

	elapsed := m.now().Sub(startedAt)
	if m.cfg.MinFillSeconds > 0 && elapsed < time.Duration(m.cfg.MinFillSeconds)*time.Second {
		return "too_fast", fieldFormStartedAt
	}
	if m.cfg.MaxFormAgeHours > 0 && elapsed > time.Duration(m.cfg.MaxFormAgeHours)*time.Hour {
		return "form_expired", fieldFormStartedAt
	}
	return "", ""
}

func (m *BotProtectionMiddleware) reject(c *gin.Context, reason, field string) {
	m.recordReject(reason)
	m.logger.Warnw("bot protection rejected submission", "reason", reason, "path", c.FullPath(), "client_ip", c.ClientIP())
	utils.ErrorResponseWithError(c, errors.NewValidationError("Submission rejected").
		WithFields(errors.FieldError{Field: field, Message: "submission failed verification"}))
	c.Abort()
}

func (m *BotProtectionMiddleware) recordReject(reason string) {
	if m.recorder != nil {
		m.recorder.BotRejected(reason)
	}
}

func stringField(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return "set"
	}
}

// formStartedAt accepts milliseconds since the epoch as a number or string.
func formStartedAt(fields map[string]any) (time.Time, bool) {
	var ms int64
	switch v := fields[fieldFormStartedAt].(type) {
	case float64:
		ms = int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return time.Time{}, true
		}
		ms = n
	default:
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
