package invoice

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DefaultCompanyName is used when the payload carries no issuer identity.
const DefaultCompanyName = "Accountsy Bill"

// Payload is the invoice data supplied for one document render. Every field is
// optional; Normalize fills documented empty values so downstream stages never
// branch on absence.
type Payload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`

	ID      Scalar `json:"id"`
	Date    Scalar `json:"date"`
	DueDate Scalar `json:"dueDate"`

	Type   string `json:"type"`
	Status string `json:"status"`
	Notes  string `json:"notes"`

	SubTotal            Scalar `json:"subTotal"`
	VAT                 Scalar `json:"vat"`
	Total               Scalar `json:"total"`
	TotalAmountReceived Scalar `json:"totalAmountReceived"`
	BalanceDue          Scalar `json:"balanceDue"`

	Items   []LineItem `json:"items"`
	Company Company    `json:"company"`
}

// LineItem is one billable entry.
type LineItem struct {
	ItemName  string `json:"itemName"`
	Quantity  Scalar `json:"quantity"`
	UnitPrice Scalar `json:"unitPrice"`
	Discount  Scalar `json:"discount"` // percentage; out-of-range values pass through unvalidated
}

// Amount derives quantity × unitPrice × (1 − discount/100).
// A discount above 100 silently yields a negative amount.
func (it LineItem) Amount() decimal.Decimal {
	qty := decimal.NewFromFloat(ToNumber(it.Quantity))
	price := decimal.NewFromFloat(ToNumber(it.UnitPrice))
	disc := decimal.NewFromFloat(ToNumber(it.Discount))
	factor := decimal.NewFromInt(1).Sub(disc.Div(decimal.NewFromInt(100)))
	return qty.Mul(price).Mul(factor)
}

// Company is the issuer block embedded in the payload.
type Company struct {
	Name           string        `json:"name"`
	BusinessName   string        `json:"businessName"`
	Email          string        `json:"email"`
	PhoneNumber    string        `json:"phoneNumber"`
	ContactAddress string        `json:"contactAddress"`
	Logo           LogoReference `json:"logo"`
}

// DisplayName prefers the registered business name over the contact name.
func (c Company) DisplayName() string {
	if c.BusinessName != "" {
		return c.BusinessName
	}
	if c.Name != "" {
		return c.Name
	}
	return DefaultCompanyName
}

// LogoReference is one of the four accepted ways of pointing at a company logo:
// inline raster bytes, a data URI, an http(s) URL, or a filesystem path.
type LogoReference struct {
	Raw   []byte // inline image bytes; wins over Value when non-empty
	Value string // data URI, absolute URL, or local path
}

// IsZero reports whether no logo was referenced at all.
func (r LogoReference) IsZero() bool {
	return len(r.Raw) == 0 && r.Value == ""
}

// UnmarshalJSON accepts a string reference or null. Anything else is treated
// as no logo; a bad reference must never fail payload decoding.
func (r *LogoReference) UnmarshalJSON(b []byte) error {
	*r = LogoReference{}
	if len(b) == 0 || string(b) == "null" || b[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	r.Value = s
	return nil
}

// MarshalJSON emits the string form; inline bytes are not round-tripped.
func (r LogoReference) MarshalJSON() ([]byte, error) {
	if r.Value == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Normalize defaults optional fields to their documented empty values.
func (p *Payload) Normalize() {
	if p.Items == nil {
		p.Items = []LineItem{}
	}
	if p.Type == "" {
		p.Type = "Invoice"
	}
}

// DocumentTitle resolves the rendered title: a settled invoice (balance due
// ≤ 0, including an absent balance) is always presented as a receipt.
func (p *Payload) DocumentTitle() string {
	if ToNumber(p.BalanceDue) <= 0 {
		return "Receipt"
	}
	if p.Type == "" {
		return "Invoice"
	}
	return p.Type
}
