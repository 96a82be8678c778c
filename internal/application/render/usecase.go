package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/accountsy/billing-api/internal/domain"
	"github.com/accountsy/billing-api/internal/domain/invoice"
)

// AttachmentName is the file name under which the document travels.
const AttachmentName = "invoice.pdf"

// DocumentRenderer turns a payload into a finished PDF buffer.
type DocumentRenderer interface {
	Render(ctx context.Context, p *invoice.Payload) ([]byte, error)
}

// Mailer delivers a rendered invoice to a recipient.
type Mailer interface {
	Send(ctx context.Context, msg Outgoing) error
}

// Outgoing is one invoice email: the finished buffer plus payload-derived
// addressing fields.
type Outgoing struct {
	To       string
	ReplyTo  string
	Subject  string
	Body     string
	Filename string
	PDF      []byte
}

// UseCase renders invoice documents and tracks the latest one produced.
type UseCase struct {
	renderer DocumentRenderer
	store    *DocumentStore
	mailer   Mailer
}

// NewUseCase wires the use case.
func NewUseCase(renderer DocumentRenderer, store *DocumentStore, mailer Mailer) *UseCase {
	return &UseCase{renderer: renderer, store: store, mailer: mailer}
}

// CreateDocument renders the payload and publishes it as the latest document.
func (uc *UseCase) CreateDocument(ctx context.Context, p *invoice.Payload) ([]byte, error) {
	buf, err := uc.renderer.Render(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	uc.store.Put(buf)
	return buf, nil
}

// LatestDocument returns the most recently rendered document, or
// domain.ErrNoDocument when none has been produced yet.
func (uc *UseCase) LatestDocument() ([]byte, error) {
	buf, ok := uc.store.Latest()
	if !ok {
		return nil, domain.ErrNoDocument
	}
	return buf, nil
}

// SendDocument renders the payload, publishes it, and emails the buffer as an
// attachment to the given recipient.
func (uc *UseCase) SendDocument(ctx context.Context, p *invoice.Payload, to string) error {
	if strings.TrimSpace(to) == "" {
		return domain.ErrMissingRecipient
	}

	buf, err := uc.CreateDocument(ctx, p)
	if err != nil {
		return err
	}

	sender := p.Company.DisplayName()
	msg := Outgoing{
		To:       to,
		ReplyTo:  p.Company.Email,
		Subject:  "Invoice from " + sender,
		Body:     "Invoice from " + sender,
		Filename: AttachmentName,
		PDF:      buf,
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send invoice email: %w", err)
	}
	return nil
}
