// Package pdf assembles one invoice payload into a paginated A4 document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER band: logo + company   │   title, id, dates, status │
//	│  ┌──────────────────────────┐  ┌──────────────────────────┐ │
//	│  │ Bill To card             │  │ Summary card             │ │
//	│  └──────────────────────────┘  └──────────────────────────┘ │
//	│  TABLE: Item | Qty | Price | Discount | Amount              │
//	│  … rows, breaking to new pages with the header repeated …   │
//	│  NOTES (optional)                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/accountsy/billing-api/internal/domain/invoice"
	"github.com/accountsy/billing-api/internal/infrastructure/logo"
)

// LogoResolver supplies validated logo bytes for a reference, or nil.
type LogoResolver interface {
	Resolve(ctx context.Context, ref invoice.LogoReference) *logo.Image
}

// Renderer assembles invoice payloads into finished PDF buffers. One Renderer
// serves concurrent renders; all mutable state lives in the per-call context.
type Renderer struct {
	logos LogoResolver
	log   zerolog.Logger
}

// NewRenderer builds the document assembler.
func NewRenderer(logos LogoResolver, log zerolog.Logger) *Renderer {
	return &Renderer{logos: logos, log: log}
}

// Render produces the complete document buffer for one payload. Resolving the
// logo is the only blocking step; a missing or invalid logo only omits the
// logo. Any drawing failure aborts the render — a malformed document is worse
// than no document.
func (r *Renderer) Render(ctx context.Context, p *invoice.Payload) ([]byte, error) {
	p.Normalize()

	var img *logo.Image
	if r.logos != nil && !p.Company.Logo.IsZero() {
		img = r.logos.Resolve(ctx, p.Company.Logo)
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	// The layout engine owns pagination; rows never rely on auto breaks.
	doc.SetAutoPageBreak(false, pageMargin)
	// Fixed creation date keeps the output byte-identical across renders.
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetTitle(p.DocumentTitle(), true)
	doc.AddPage()

	rc := newRenderContext(doc, img)
	rc.drawHeader(p)
	rc.drawInfoCards(p)
	rc.drawItemRows(p.Items)
	rc.drawNotes(p.Notes)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: finalize document: %w", err)
	}

	r.log.Debug().
		Int("pages", doc.PageCount()).
		Int("items", len(p.Items)).
		Bool("logo", img != nil).
		Msg("invoice pdf rendered")

	return buf.Bytes(), nil
}
