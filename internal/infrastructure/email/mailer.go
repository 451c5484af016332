package email

import (
	"context"
	"fmt"
	"strings"

	"remotcyberhelp/internal/shared/logger"
)

type TicketMail struct {
	Number       string
	Subject      string
	Description  string
	CustomerName string
	Email        string
	Phone        string
	Category     string
	Priority     string
	Status       string
}

type ResponseMail struct {
	TicketMail
	Message   string
	FromAdmin bool
}

type ContactMail struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Service string
	Message string
}

type ConsultationMail struct {
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Date        string
	Time        string
	Mode        string
	Message     string
}

type GovernmentMail struct {
	Reference   string
	ServiceName string
	FullName    string
	Email       string
	Phone       string
}

type resetMail struct {
	Name    string
	Code    string
	Minutes int
}

type welcomeMail struct {
	Name  string
	Token string
}

// AdminDirectory supplies the addresses of staff accounts.
type AdminDirectory interface {
	ListAdminEmails(ctx context.Context) ([]string, error)
}

type MailerConfig struct {
	BusinessName   string
	BaseURL        string
	AdminAddresses []string
}

// Mailer renders the transactional templates and hands them to a Sender.
type Mailer struct {
	sender Sender
	cfg    MailerConfig
	admins AdminDirectory
	logger logger.Interface
}

func NewMailer(sender Sender, cfg MailerConfig, admins AdminDirectory, log logger.Interface) *Mailer {
	if cfg.BusinessName == "" {
		cfg.BusinessName = "RemotCyberHelp"
	}
	return &Mailer{
		sender: sender,
		cfg:    cfg,
		admins: admins,
		logger: log,
	}
}

func (m *Mailer) SendTicketConfirmation(ctx context.Context, t TicketMail) error {
	return m.sendTo(ctx, "ticket_confirmation", t, "", t.Email)
}

func (m *Mailer) SendTicketAlert(ctx context.Context, t TicketMail) error {
	return m.sendToAdmins(ctx, "ticket_alert", t, t.Email)
}

// SendTicketResponse mails the customer when staff replied and staff otherwise.
func (m *Mailer) SendTicketResponse(ctx context.Context, r ResponseMail) error {
	if r.FromAdmin {
		return m.sendTo(ctx, "ticket_response", r, "", r.Email)
	}
	return m.sendToAdmins(ctx, "ticket_response", r, r.Email)
}

func (m *Mailer) SendTicketStatusChanged(ctx context.Context, t TicketMail) error {
	return m.sendTo(ctx, "ticket_status", t, "", t.Email)
}

func (m *Mailer) SendContactAlert(ctx context.Context, c ContactMail) error {
	return m.sendToAdmins(ctx, "contact_alert", c, c.Email)
}

func (m *Mailer) SendContactAutoReply(ctx context.Context, c ContactMail) error {
	return m.sendTo(ctx, "contact_reply", c, "", c.Email)
}

func (m *Mailer) SendConsultationAlert(ctx context.Context, c ConsultationMail) error {
	return m.sendToAdmins(ctx, "consultation_alert", c, c.Email)
}

func (m *Mailer) SendConsultationConfirmation(ctx context.Context, c ConsultationMail) error {
	return m.sendTo(ctx, "consultation_confirmation", c, "", c.Email)
}

func (m *Mailer) SendGovernmentConfirmation(ctx context.Context, g GovernmentMail) error {
	return m.sendTo(ctx, "government_confirmation", g, "", g.Email)
}

func (m *Mailer) SendGovernmentAlert(ctx context.Context, g GovernmentMail) error {
	return m.sendToAdmins(ctx, "government_alert", g, g.Email)
}

func (m *Mailer) SendPasswordResetCode(ctx context.Context, to, name, code string, minutes int) error {
	return m.sendTo(ctx, "password_reset", resetMail{Name: name, Code: code, Minutes: minutes}, "", to)
}

func (m *Mailer) SendAttentionDigest(ctx context.Context, tickets []TicketMail) error {
	if len(tickets) == 0 {
		return nil
	}
	return m.sendToAdmins(ctx, "attention_digest", tickets, "")
}

func (m *Mailer) SendNewsletterWelcome(ctx context.Context, to, name, token string) error {
	return m.sendTo(ctx, "newsletter_welcome", welcomeMail{Name: name, Token: token}, "", to)
}

func (m *Mailer) sendTo(ctx context.Context, tmpl string, data any, replyTo string, to ...string) error {
	msg, err := render(tmpl, view{Business: m.cfg.BusinessName, BaseURL: m.cfg.BaseURL, D: data})
	if err != nil {
		return err
	}
	msg.To = to
	msg.ReplyTo = replyTo

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", tmpl, err)
	}
	m.logger.Debugw("email sent", "template", tmpl, "recipients", len(to))
	return nil
}

func (m *Mailer) sendToAdmins(ctx context.Context, tmpl string, data any, replyTo string) error {
	recipients := m.adminRecipients(ctx)
	if len(recipients) == 0 {
		m.logger.Warnw("no admin recipients configured, alert dropped", "template", tmpl)
		return nil
	}
	return m.sendTo(ctx, tmpl, data, replyTo, recipients...)
}

// adminRecipients merges configured addresses with active staff accounts.
func (m *Mailer) adminRecipients(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(addr string) {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	for _, a := range m.cfg.AdminAddresses {
		add(a)
	}
	if m.admins != nil {
		staff, err := m.admins.ListAdminEmails(ctx)
		if err != nil {
			m.logger.Warnw("failed to load admin emails", "error", err)
		}
		for _, a := range staff {
			add(a)
		}
	}
	return out
}
