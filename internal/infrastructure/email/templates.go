package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

type mailTemplate struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

// view is the value every template executes against.
type view struct {
	Business string
	BaseURL  string
	D        any
}

const layoutHead = `<html><body style="font-family:Arial,sans-serif;color:#222">`
const layoutFoot = `<p style="color:#888;font-size:12px">{{.Business}}</p></body></html>`

var templateSources = map[string][3]string{
	"ticket_confirmation": {
		`Ticket {{.D.Number}} received: {{.D.Subject}}`,
		`Hello {{.D.CustomerName}},

We have received your support request and opened ticket {{.D.Number}}.
Priority: {{.D.Priority}}
Status: {{.D.Status}}

Keep this number for reference. A technician will contact you shortly.

{{.Business}}`,
		layoutHead + `<h2>We received your request</h2>
<p>Hello {{.D.CustomerName}},</p>
<p>Your ticket number is <strong>{{.D.Number}}</strong>.</p>
<p>Priority: {{.D.Priority}}<br>Status: {{.D.Status}}</p>
<p>A technician will contact you shortly.</p>` + layoutFoot,
	},
	"ticket_alert": {
		`[{{.D.Priority}}] New ticket {{.D.Number}}: {{.D.Subject}}`,
		`New ticket {{.D.Number}}
Customer: {{.D.CustomerName}} <{{.D.Email}}> {{.D.Phone}}
Category: {{.D.Category}}
Priority: {{.D.Priority}}

{{.D.Description}}`,
		layoutHead + `<h2>New ticket {{.D.Number}}</h2>
<p>Customer: {{.D.CustomerName}} &lt;{{.D.Email}}&gt; {{.D.Phone}}<br>
Category: {{.D.Category}}<br>Priority: {{.D.Priority}}</p>
<pre style="white-space:pre-wrap">{{.D.Description}}</pre>` + layoutFoot,
	},
	"ticket_response": {
		`Update on ticket {{.D.Number}}: {{.D.Subject}}`,
		`Ticket {{.D.Number}} has a new reply{{if .D.FromAdmin}} from our team{{else}} from {{.D.CustomerName}}{{end}}:

{{.D.Message}}`,
		layoutHead + `<h2>New reply on ticket {{.D.Number}}</h2>
<p>{{if .D.FromAdmin}}Our team replied:{{else}}{{.D.CustomerName}} replied:{{end}}</p>
<pre style="white-space:pre-wrap">{{.D.Message}}</pre>` + layoutFoot,
	},
	"ticket_status": {
		`Ticket {{.D.Number}} is now {{.D.Status}}`,
		`Hello {{.D.CustomerName}},

The status of ticket {{.D.Number}} ({{.D.Subject}}) changed to {{.D.Status}}.`,
		layoutHead + `<p>Hello {{.D.CustomerName}},</p>
<p>The status of ticket <strong>{{.D.Number}}</strong> changed to <strong>{{.D.Status}}</strong>.</p>` + layoutFoot,
	},
	"contact_alert": {
		`New contact message from {{.D.Name}}{{if .D.Subject}}: {{.D.Subject}}{{end}}`,
		`From: {{.D.Name}} <{{.D.Email}}> {{.D.Phone}}
Service: {{.D.Service}}

{{.D.Message}}`,
		layoutHead + `<h2>New contact message</h2>
<p>From: {{.D.Name}} &lt;{{.D.Email}}&gt; {{.D.Phone}}<br>Service: {{.D.Service}}</p>
<pre style="white-space:pre-wrap">{{.D.Message}}</pre>` + layoutFoot,
	},
	"contact_reply": {
		`Thanks for contacting {{.Business}}`,
		`Hello {{.D.Name}},

Thank you for your message. We usually reply within one business day.

{{.Business}}`,
		layoutHead + `<p>Hello {{.D.Name}},</p>
<p>Thank you for your message. We usually reply within one business day.</p>` + layoutFoot,
	},
	"consultation_alert": {
		`Consultation request: {{.D.ServiceType}} on {{.D.Date}} {{.D.Time}}`,
		`{{.D.Name}} <{{.D.Email}}> {{.D.Phone}} requested a {{.D.Mode}} consultation.
Service: {{.D.ServiceType}}
When: {{.D.Date}} {{.D.Time}}

{{.D.Message}}`,
		layoutHead + `<h2>Consultation request</h2>
<p>{{.D.Name}} &lt;{{.D.Email}}&gt; {{.D.Phone}}<br>
Service: {{.D.ServiceType}}<br>Mode: {{.D.Mode}}<br>When: {{.D.Date}} {{.D.Time}}</p>
<pre style="white-space:pre-wrap">{{.D.Message}}</pre>` + layoutFoot,
	},
	"consultation_confirmation": {
		`Your consultation request for {{.D.Date}}`,
		`Hello {{.D.Name}},

We received your {{.D.Mode}} consultation request for {{.D.Date}} at {{.D.Time}}.
We will confirm the appointment shortly.`,
		layoutHead + `<p>Hello {{.D.Name}},</p>
<p>We received your {{.D.Mode}} consultation request for <strong>{{.D.Date}} at {{.D.Time}}</strong>.
We will confirm the appointment shortly.</p>` + layoutFoot,
	},
	"government_confirmation": {
		`Request {{.D.Reference}} received: {{.D.ServiceName}}`,
		`Hello {{.D.FullName}},

Your request for {{.D.ServiceName}} has reference {{.D.Reference}}.
You can track it at {{.BaseURL}}/government/track?reference={{.D.Reference}}`,
		layoutHead + `<p>Hello {{.D.FullName}},</p>
<p>Your request for {{.D.ServiceName}} has reference <strong>{{.D.Reference}}</strong>.</p>` + layoutFoot,
	},
	"government_alert": {
		`Government service request {{.D.Reference}}: {{.D.ServiceName}}`,
		`{{.D.FullName}} <{{.D.Email}}> {{.D.Phone}} requested {{.D.ServiceName}} ({{.D.Reference}}).`,
		layoutHead + `<p>{{.D.FullName}} &lt;{{.D.Email}}&gt; {{.D.Phone}} requested {{.D.ServiceName}} (<strong>{{.D.Reference}}</strong>).</p>` + layoutFoot,
	},
	"password_reset": {
		`Your {{.Business}} verification code`,
		`Hello {{.D.Name}},

Your verification code is {{.D.Code}}. It expires in {{.D.Minutes}} minutes.
If you did not request a password reset, ignore this email.`,
		layoutHead + `<p>Hello {{.D.Name}},</p>
<p>Your verification code is</p><h1 style="letter-spacing:4px">{{.D.Code}}</h1>
<p>It expires in {{.D.Minutes}} minutes. If you did not request a password reset, ignore this email.</p>` + layoutFoot,
	},
	"attention_digest": {
		`{{len .D}} ticket(s) need attention`,
		`{{range .D}}{{.Number}} [{{.Priority}}/{{.Status}}] {{.Subject}} ({{.CustomerName}})
{{end}}`,
		layoutHead + `<h2>Tickets needing attention</h2><ul>
{{range .D}}<li><strong>{{.Number}}</strong> [{{.Priority}}/{{.Status}}] {{.Subject}} ({{.CustomerName}})</li>
{{end}}</ul>` + layoutFoot,
	},
	"newsletter_welcome": {
		`Welcome to the {{.Business}} newsletter`,
		`Hello{{if .D.Name}} {{.D.Name}}{{end}},

You are subscribed. To unsubscribe visit {{.BaseURL}}/newsletter/unsubscribe?token={{.D.Token}}`,
		layoutHead + `<p>Hello{{if .D.Name}} {{.D.Name}}{{end}},</p><p>You are subscribed.</p>
<p><a href="{{.BaseURL}}/newsletter/unsubscribe?token={{.D.Token}}">Unsubscribe</a></p>` + layoutFoot,
	},
}

var templates = mustParseTemplates()

func mustParseTemplates() map[string]*mailTemplate {
	out := make(map[string]*mailTemplate, len(templateSources))
	for name, src := range templateSources {
		out[name] = &mailTemplate{
			subject: texttemplate.Must(texttemplate.New(name + "_subject").Parse(src[0])),
			text:    texttemplate.Must(texttemplate.New(name + "_text").Parse(src[1])),
			html:    htmltemplate.Must(htmltemplate.New(name + "_html").Parse(src[2])),
		}
	}
	return out
}

func render(name string, v view) (*Message, error) {
	t, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", name)
	}

	var subject, text, html bytes.Buffer
	if err := t.subject.Execute(&subject, v); err != nil {
		return nil, fmt.Errorf("failed to render %s subject: %w", name, err)
	}
	if err := t.text.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("failed to render %s text: %w", name, err)
	}
	if err := t.html.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("failed to render %s html: %w", name, err)
	}

	return &Message{
		Subject: strings.Join(strings.Fields(subject.String()), " "),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
