// Package email delivers transactional mail through SMTP or SendGrid.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"remotcyberhelp/internal/shared/config"
	"remotcyberhelp/internal/shared/logger"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

func (m *Message) validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("message has no subject")
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// NewSender picks the provider from cfg and wraps it in a circuit breaker.
// An unconfigured provider yields a NoopSender so callers never get nil.
func NewSender(cfg *config.EmailConfig, log logger.Interface) Sender {
	var s Sender
	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			log.Warnw("sendgrid selected without api key, email disabled")
			return NewNoopSender(log)
		}
		s = NewSendGridSender(cfg.SendGridAPIKey, cfg.FromAddress, cfg.FromName)
	case "smtp", "":
		if cfg.SMTPHost == "" {
			log.Debugw("email service not configured, smtp_host is empty")
			return NewNoopSender(log)
		}
		s = NewSMTPSender(SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUser,
			Password:    cfg.SMTPPassword,
			FromAddress: cfg.FromAddress,
			FromName:    cfg.FromName,
		})
	default:
		return NewNoopSender(log)
	}

	log.Infow("email service initialized", "provider", s.Name(), "from", cfg.FromAddress)
	return NewBreakerSender(s, log)
}

// NoopSender logs instead of sending.
type NoopSender struct {
	logger logger.Interface
}

func NewNoopSender(log logger.Interface) *NoopSender {
	return &NoopSender{logger: log}
}

func (n *NoopSender) Send(_ context.Context, msg *Message) error {
	n.logger.Debugw("email not sent, no provider configured", "to", msg.To, "subject", msg.Subject)
	return ErrEmailServiceNotConfigured
}

func (n *NoopSender) Name() string { return "noop" }
