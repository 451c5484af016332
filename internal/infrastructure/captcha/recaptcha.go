// Package captcha verifies reCAPTCHA tokens against Google's siteverify API.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/logger"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrUnavailable means the verdict is unknown: the provider timed out,
// errored, or the breaker is open. Callers apply their fail-open policy.
var ErrUnavailable = errors.New("captcha verification unavailable")

type Result struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (*Result, error)
}

type RecaptchaVerifier struct {
	client   *resty.Client
	breaker  *gobreaker.CircuitBreaker
	secret   string
	url      string
	minScore float64
	logger   logger.Interface
}

func NewRecaptchaVerifier(cfg *config.RecaptchaConfig, log logger.Interface) *RecaptchaVerifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	url := cfg.VerifyURL
	if url == "" {
		url = defaultVerifyURL
	}

	return &RecaptchaVerifier{
		client:   resty.New().SetTimeout(timeout),
		secret:   cfg.SecretKey,
		url:      url,
		minScore: cfg.MinScore,
		logger:   log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "recaptcha",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warnw("captcha circuit breaker state changed", "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Verify returns a rejected Result for a bad or low-scoring token and
// ErrUnavailable when no verdict could be obtained.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (*Result, error) {
	if token == "" {
		return &Result{Success: false, ErrorCodes: []string{"missing-input-response"}}, nil
	}

	out, err := v.breaker.Execute(func() (interface{}, error) {
		return v.call(ctx, token, remoteIP)
	})
	if err != nil {
		v.logger.Warnw("captcha verification failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result := out.(*Result)
	if result.Success && v.minScore > 0 && result.Score < v.minScore {
		v.logger.Infow("captcha score below threshold", "score", result.Score, "min_score", v.minScore)
		result.Success = false
		result.ErrorCodes = append(result.ErrorCodes, "low-score")
	}
	return result, nil
}

func (v *RecaptchaVerifier) call(ctx context.Context, token, remoteIP string) (*Result, error) {
	form := map[string]string{
		"secret":   v.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	var result Result
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		Post(v.url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("siteverify returned status %d", resp.StatusCode())
	}
	return &result, nil
}
