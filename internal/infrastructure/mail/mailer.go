// Package mail dispatches rendered invoices over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/accountsy/billing-api/internal/application/render"
	"github.com/accountsy/billing-api/internal/domain/invoice"
	"github.com/accountsy/billing-api/pkg/config"
)

// SMTPMailer implements render.Mailer over a configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

// NewSMTPMailer builds the mailer. The From address prefers the SMTP account
// and falls back to the configured no-reply address.
func NewSMTPMailer(cfg config.SMTPConfig, log zerolog.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	if cfg.TLSSkipVerify {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, InsecureSkipVerify: true}
	}

	from := cfg.User
	if from == "" {
		from = cfg.From
	}

	return &SMTPMailer{dialer: d, from: from, log: log}
}

// Send emails the finished document as a PDF attachment.
func (m *SMTPMailer) Send(_ context.Context, msg render.Outgoing) error {
	em := gomail.NewMessage()
	em.SetAddressHeader("From", m.from, invoice.DefaultCompanyName)
	em.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		em.SetHeader("Reply-To", msg.ReplyTo)
	}
	em.SetHeader("Subject", msg.Subject)
	em.SetBody("text/plain", msg.Body)
	em.Attach(msg.Filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.PDF)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := m.dialer.DialAndSend(em); err != nil {
		return fmt.Errorf("mail: send to %s: %w", msg.To, err)
	}

	m.log.Info().Str("to", msg.To).Int("bytes", len(msg.PDF)).Msg("invoice email sent")
	return nil
}
