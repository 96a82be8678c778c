package pdf

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/accountsy/billing-api/internal/domain/invoice"
	"github.com/accountsy/billing-api/internal/infrastructure/logo"
)

// Page geometry in points (A4, fixed 40pt margins all around).
const (
	pageMargin   = 40
	headerHeight = 170 // colored band across the first page
	headerPadY   = 36
	logoSlot     = 64 // square reserved for the company logo

	cardGutter  = 20
	cardHeight  = 150
	cardPadding = 16

	tableHeaderAdvance = 25 // distance from table-header y to the first row y
	tableRowHeight     = 22
	rowBottomSlack     = 50 // a row may not start below pageH - margin - slack

	pillHeight = 18
	pillPadX   = 10
)

// Column x-offsets as fractions of the content width, so the table stays
// proportionally consistent regardless of page width.
const (
	colQuantityFrac = 0.58
	colPriceFrac    = 0.70
	colDiscountFrac = 0.80
	colAmountFrac   = 0.90
)

type columns struct {
	item, quantity, price, discount, amount float64
}

// renderContext owns the drawing cursor for one render pass. It is created
// fresh per document and advanced phase by phase, never shared across renders.
type renderContext struct {
	doc *gofpdf.Fpdf
	tr  func(string) string // UTF-8 -> document encoding

	pageW, pageH                       float64
	marginL, marginT, marginR, marginB float64
	contentW                           float64
	cols                               columns

	y    float64
	logo *logo.Image
}

func newRenderContext(doc *gofpdf.Fpdf, img *logo.Image) *renderContext {
	pageW, pageH := doc.GetPageSize()
	l, t, r, b := doc.GetMargins()
	contentW := pageW - l - r

	return &renderContext{
		doc:      doc,
		tr:       doc.UnicodeTranslatorFromDescriptor(""),
		pageW:    pageW,
		pageH:    pageH,
		marginL:  l,
		marginT:  t,
		marginR:  r,
		marginB:  b,
		contentW: contentW,
		cols: columns{
			item:     l,
			quantity: l + contentW*colQuantityFrac,
			price:    l + contentW*colPriceFrac,
			discount: l + contentW*colDiscountFrac,
			amount:   l + contentW*colAmountFrac,
		},
		logo: img,
	}
}

// ── phase: HEADER ─────────────────────────────────────────────────────────────

// drawHeader fills the colored band: company identity (with optional logo)
// left, document title and dates right, status pill flush to the right margin.
func (rc *renderContext) drawHeader(p *invoice.Payload) {
	doc := rc.doc
	rc.setFillColor(colorPrimary)
	doc.Rect(0, 0, rc.pageW, headerHeight, "F")

	colW := rc.contentW / 2
	rightX := rc.marginL + colW

	textX := rc.marginL
	textW := colW
	if rc.logo != nil {
		// Translucent slot behind the logo.
		doc.SetAlpha(0.15, "Normal")
		rc.setFillColor(colorWhite)
		doc.Rect(rc.marginL, headerPadY-6, logoSlot+12, logoSlot+12, "F")
		doc.SetAlpha(1, "Normal")
		rc.placeLogo(rc.marginL+6, headerPadY)

		textX = rc.marginL + logoSlot + 20
		textW = math.Max(colW-(logoSlot+20), 120)
	}

	rc.setFont("B", 24, colorWhite)
	rc.textAt(textX, headerPadY, textW, 28, p.Company.DisplayName(), "L")

	rc.setFont("", 10, colorHeaderInk)
	y := headerPadY + 28.0
	for _, line := range []string{p.Company.Email, p.Company.PhoneNumber, p.Company.ContactAddress} {
		rc.textAt(textX, y, textW, 13, line, "L")
		y += 13
	}

	rc.setFont("B", 24, colorWhite)
	rc.textAt(rightX, headerPadY, colW, 28, p.DocumentTitle(), "R")

	rc.setFont("", 10, colorHeaderInk)
	y = headerPadY + 28.0
	for _, line := range []string{
		"Invoice #: " + p.ID.Display(),
		"Date: " + invoice.ResolveDate(p.Date),
		"Due: " + invoice.ResolveDate(p.DueDate),
	} {
		rc.textAt(rightX, y, colW, 13, line, "R")
		y += 13
	}

	rc.drawStatusPill(p.Status, rc.marginL+rc.contentW, headerPadY+78)

	rc.y = headerHeight + 28
}

// placeLogo fits the validated logo into the fixed square slot, preserving
// aspect ratio.
func (rc *renderContext) placeLogo(x, y float64) {
	opts := gofpdf.ImageOptions{ImageType: rc.logo.Format}
	info := rc.doc.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(rc.logo.Bytes))
	if info == nil {
		return
	}
	w, h := info.Width(), info.Height()
	if w <= 0 || h <= 0 {
		return
	}
	scale := math.Min(logoSlot/w, logoSlot/h)
	rc.doc.ImageOptions("company-logo", x, y, w*scale, h*scale, false, opts, 0, "")
}

// drawStatusPill renders the rounded badge sized to its upper-cased label,
// right-aligned at rightX. Empty statuses render nothing.
func (rc *renderContext) drawStatusPill(status string, rightX, y float64) {
	if status == "" {
		return
	}
	doc := rc.doc
	doc.SetFont("Helvetica", "B", 9)

	label := rc.tr(strings.ToUpper(status))
	textW := doc.GetStringWidth(label)
	pillW := textW + pillPadX*2
	x := rightX - pillW

	style := StyleForStatus(status)
	rc.setFillColor(style.Fill)
	doc.RoundedRect(x, y, pillW, pillHeight, 9, "1234", "F")

	doc.SetTextColor(style.Text.R, style.Text.G, style.Text.B)
	doc.SetXY(x+pillPadX, y+3)
	doc.CellFormat(textW, pillHeight-6, label, "", 0, "L", false, 0, "")
}

// ── phase: INFO_CARDS ─────────────────────────────────────────────────────────

// drawInfoCards renders the recipient card and the summary card side by side.
func (rc *renderContext) drawInfoCards(p *invoice.Payload) {
	doc := rc.doc
	cardW := (rc.contentW - cardGutter) / 2
	top := rc.y

	rc.setFillColor(colorLightBg)
	rc.setDrawColor(colorBorder)
	doc.RoundedRect(rc.marginL, top, cardW, cardHeight, 12, "1234", "FD")
	doc.RoundedRect(rc.marginL+cardW+cardGutter, top, cardW, cardHeight, 12, "1234", "FD")

	innerW := cardW - cardPadding*2

	// Left card: recipient identity, one truncated line per field.
	x := rc.marginL + cardPadding
	rc.setFont("B", 10, colorMuted)
	rc.textAt(x, top+cardPadding, innerW, 12, "Bill To", "L")

	name := p.Name
	if name == "" {
		name = "—"
	}
	rc.setFont("B", 12, colorText)
	rc.textAt(x, top+cardPadding+18, innerW, 14, name, "L")

	rc.setFont("", 10, colorMuted)
	y := top + cardPadding + 38.0
	for _, line := range []string{p.Email, p.Phone, p.Address} {
		rc.textAt(x, y, innerW, 13, line, "L")
		y += 13
	}

	// Right card: labeled summary rows; total and balance due are emphasized.
	sx := rc.marginL + cardW + cardGutter + cardPadding
	rc.setFont("B", 10, colorMuted)
	rc.textAt(sx, top+cardPadding, innerW, 12, "Summary", "L")

	sy := top + cardPadding + 20.0
	sy = rc.drawSummaryRow(sx, sy, innerW, "Sub total", invoice.FormatCurrency(p.SubTotal), false)
	sy = rc.drawSummaryRow(sx, sy, innerW, "VAT", invoice.FormatCurrency(p.VAT), false)
	sy = rc.drawSummaryRow(sx, sy, innerW, "Total", invoice.FormatCurrency(p.Total), true)
	sy = rc.drawSummaryRow(sx, sy+4, innerW, "Paid", invoice.FormatCurrency(p.TotalAmountReceived), false)
	rc.drawSummaryRow(sx, sy, innerW, "Balance due", invoice.FormatCurrency(p.BalanceDue), true)

	rc.y = top + cardHeight + 30
}

// drawSummaryRow prints one labeled amount and returns the next row's y.
func (rc *renderContext) drawSummaryRow(x, y, w float64, label, value string, emphasize bool) float64 {
	if emphasize {
		rc.setFont("B", 11, colorPrimaryDark)
	} else {
		rc.setFont("", 10, colorMuted)
	}
	rc.textAt(x, y, w-70, 12, label, "L")

	valueSize := 10.0
	if emphasize {
		valueSize = 12
	}
	rc.setFont("B", valueSize, colorText)
	if value == "" {
		value = "-"
	}
	rc.textAt(x, y, w, 12, value, "R")

	if emphasize {
		return y + 22
	}
	return y + 18
}

// ── phases: TABLE_HEADER / TABLE_ROWS ─────────────────────────────────────────

// drawTableHeader draws the shaded five-column header bar at y and returns
// the y of the first row beneath it.
func (rc *renderContext) drawTableHeader(y float64) float64 {
	doc := rc.doc
	rc.setFillColor(colorLightBg)
	doc.Rect(rc.cols.item, y-10, rc.contentW, 28, "F")

	rc.setFont("B", 10, colorMuted)
	rc.textAt(rc.cols.item, y, rc.cols.quantity-rc.cols.item-10, 12, "Item", "L")
	rc.textAt(rc.cols.quantity, y, 50, 12, "Qty", "R")
	rc.textAt(rc.cols.price, y, 60, 12, "Price", "R")
	rc.textAt(rc.cols.discount, y, 70, 12, "Discount", "R")
	rc.textAt(rc.cols.amount, y, 80, 12, "Amount", "R")

	rc.setDrawColor(colorBorder)
	doc.SetLineWidth(1)
	doc.Line(rc.cols.item, y+15, rc.pageW-rc.marginR, y+15)

	return y + tableHeaderAdvance
}

// drawItemRows emits one row per line item, breaking to a fresh page — with
// the table header redrawn — whenever the next row would cross the bottom
// threshold. The header is therefore never orphaned from its rows.
func (rc *renderContext) drawItemRows(items []invoice.LineItem) {
	y := rc.drawTableHeader(rc.y)
	for i, item := range items {
		if y > rc.rowLimit() {
			rc.doc.AddPage()
			y = rc.drawTableHeader(rc.marginT)
		}
		rc.drawItemRow(y, item, i)
		y += tableRowHeight
	}
	rc.y = y
}

// rowLimit is the last cursor position at which a row may still start.
func (rc *renderContext) rowLimit() float64 {
	return rc.pageH - rc.marginB - rowBottomSlack
}

func (rc *renderContext) drawItemRow(y float64, item invoice.LineItem, index int) {
	doc := rc.doc
	qty := invoice.ToNumber(item.Quantity)
	price := invoice.ToNumber(item.UnitPrice)
	discount := invoice.ToNumber(item.Discount)

	if index%2 == 0 {
		rc.setFillColor(colorLightBg)
		doc.Rect(rc.cols.item, y-6, rc.contentW, tableRowHeight, "F")
	}

	rc.setFont("", 10, colorText)
	rc.textAt(rc.cols.item, y, rc.cols.quantity-rc.cols.item-10, 12, item.ItemName, "L")

	// Zero quantity means "no line value", not the number zero: the numeric
	// cells stay blank.
	if qty != 0 {
		rc.textAt(rc.cols.quantity, y, 50, 12, trimFloat(qty), "R")
		rc.textAt(rc.cols.price, y, 60, 12, invoice.FormatCurrency(invoice.Number(price)), "R")
		if discount != 0 {
			rc.textAt(rc.cols.discount, y, 70, 12, trimFloat(discount)+"%", "R")
		}
		amount, _ := item.Amount().Float64()
		rc.textAt(rc.cols.amount, y, 80, 12, invoice.FormatCurrency(invoice.Number(amount)), "R")
	}

	rc.setDrawColor(colorBorder)
	doc.SetLineWidth(1)
	doc.Line(rc.cols.item, y+16, rc.pageW-rc.marginR, y+16)
}

// ── phase: NOTES ──────────────────────────────────────────────────────────────

// drawNotes appends the titled free-text block wrapped to the content width,
// flowing onto a new page when space runs out. Empty notes render nothing.
func (rc *renderContext) drawNotes(notes string) {
	if notes == "" {
		return
	}
	doc := rc.doc

	y := rc.y + 20
	if y > rc.pageH-rc.marginB-40 {
		doc.AddPage()
		y = rc.marginT
	}

	rc.setFont("B", 10, colorPrimaryDark)
	rc.textAt(rc.marginL, y, rc.contentW, 12, "NOTES", "L")
	y += 18

	rc.setFont("", 10, colorText)
	for _, line := range doc.SplitText(rc.tr(notes), rc.contentW) {
		if y > rc.pageH-rc.marginB {
			doc.AddPage()
			y = rc.marginT
		}
		doc.SetXY(rc.marginL, y)
		doc.CellFormat(rc.contentW, 13, line, "", 0, "L", false, 0, "")
		y += 13
	}
	rc.y = y
}

// ── drawing helpers ───────────────────────────────────────────────────────────

func (rc *renderContext) setFont(style string, size float64, color RGB) {
	rc.doc.SetFont("Helvetica", style, size)
	rc.doc.SetTextColor(color.R, color.G, color.B)
}

func (rc *renderContext) setFillColor(c RGB) {
	rc.doc.SetFillColor(c.R, c.G, c.B)
}

func (rc *renderContext) setDrawColor(c RGB) {
	rc.doc.SetDrawColor(c.R, c.G, c.B)
}

// textAt draws a single line inside a fixed-width box, truncating rather than
// wrapping. align is "L" or "R".
func (rc *renderContext) textAt(x, y, w, h float64, s, align string) {
	rc.doc.SetXY(x, y)
	rc.doc.CellFormat(w, h, rc.fit(rc.tr(s), w), "", 0, align, false, 0, "")
}

// fit trims an already-encoded string with an ellipsis until it fits width w.
func (rc *renderContext) fit(s string, w float64) string {
	if rc.doc.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 {
		s = s[:len(s)-1]
		if rc.doc.GetStringWidth(s+"...") <= w {
			return s + "..."
		}
	}
	return ""
}

// trimFloat renders a float without forced decimals ("2" not "2.000000").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
