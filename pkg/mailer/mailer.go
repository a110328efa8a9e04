// Package mailer sends transactional email through SendGrid dynamic templates.
package mailer

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type Recipient struct {
	Name    string
	Address string
}

// Mailer sends one templated message. Callers treat failures as non-fatal.
type Mailer interface {
	SendTemplate(ctx context.Context, to Recipient, templateID string, data map[string]any) error
}

type sendgridMailer struct {
	key  string
	from *sgmail.Email
	send func(req rest.Request) (*rest.Response, error)
}

// New returns a SendGrid mailer, or a log-only mailer when apiKey is empty.
func New(apiKey, fromEmail, fromName string) Mailer {
	if apiKey == "" {
		log.Println("SENDGRID_API_KEY not set, emails will only be logged.")
		return logMailer{}
	}
	return &sendgridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(fromName, fromEmail),
		send: sendgrid.API,
	}
}

func (m *sendgridMailer) prepare(to Recipient, templateID string, data map[string]any) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	for k, v := range data {
		p.SetDynamicTemplateData(k, v)
	}

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.SetTemplateID(templateID)
	msg.AddPersonalizations(p)
	return msg
}

func (m *sendgridMailer) SendTemplate(ctx context.Context, to Recipient, templateID string, data map[string]any) error {
	if to.Address == "" {
		return fmt.Errorf("mailer: empty recipient")
	}
	if templateID == "" {
		log.Printf("mailer: no template configured, skipping email to %s", to.Address)
		return nil
	}

	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(to, templateID, data))

	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := m.send(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return nil
}

type logMailer struct{}

func (logMailer) SendTemplate(_ context.Context, to Recipient, templateID string, data map[string]any) error {
	log.Printf("mail (not sent): to=%s template=%s data=%v", to.Address, templateID, data)
	return nil
}
