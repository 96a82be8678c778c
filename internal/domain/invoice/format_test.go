package invoice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accountsy/billing-api/internal/domain/invoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// FormatCurrency: monetary display with grouping and exactly two decimals.
// Clients send amounts as numbers, pre-formatted strings, or nothing at all;
// the formatter must render something sensible for every shape and never fail.
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatCurrency_NumberGetsGroupingAndTwoDecimals(t *testing.T) {
	assert.Equal(t, "1,234.50", invoice.FormatCurrency(invoice.Number(1234.5)))
	assert.Equal(t, "2,000.00", invoice.FormatCurrency(invoice.Number(2000)))
	assert.Equal(t, "0.00", invoice.FormatCurrency(invoice.Number(0)))
	assert.Equal(t, "-1,234.50", invoice.FormatCurrency(invoice.Number(-1234.5)))
}

func TestFormatCurrency_NumericStringIsReformatted(t *testing.T) {
	assert.Equal(t, "1,500.00", invoice.FormatCurrency(invoice.Text("1500")),
		"a plain numeric string must gain grouping and decimals")
	assert.Equal(t, "1,234.50", invoice.FormatCurrency(invoice.Text("1,234.5")),
		"grouping separators in the input must not break parsing")
}

func TestFormatCurrency_NonNumericStringPassesThrough(t *testing.T) {
	assert.Equal(t, "abc", invoice.FormatCurrency(invoice.Text("abc")))
	assert.Equal(t, "N/A", invoice.FormatCurrency(invoice.Text("  N/A  ")),
		"pass-through strings come back trimmed")
}

func TestFormatCurrency_AbsentAndBlankRenderEmpty(t *testing.T) {
	assert.Equal(t, "", invoice.FormatCurrency(invoice.Scalar{}))
	assert.Equal(t, "", invoice.FormatCurrency(invoice.Text("   ")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ToNumber: arithmetic coercion. Anything that is not a finite number is zero,
// so line math can never fail on sloppy input.
// ──────────────────────────────────────────────────────────────────────────────

func TestToNumber_CoercesLooseShapes(t *testing.T) {
	assert.Equal(t, 42.5, invoice.ToNumber(invoice.Number(42.5)))
	assert.Equal(t, 1500.0, invoice.ToNumber(invoice.Text("1,500")))
	assert.Equal(t, 0.0, invoice.ToNumber(invoice.Scalar{}))
	assert.Equal(t, 0.0, invoice.ToNumber(invoice.Text("not a number")))
}

func TestToNumber_NonFiniteCollapsesToZero(t *testing.T) {
	assert.Equal(t, 0.0, invoice.ToNumber(invoice.Number(math.NaN())))
	assert.Equal(t, 0.0, invoice.ToNumber(invoice.Number(math.Inf(1))))
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveDate: numbers are Unix-millisecond timestamps, strings are parsed
// against the known layouts, and unparseable strings come back verbatim.
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveDate_UnixMillisTimestamp(t *testing.T) {
	// 2023-11-14T22:13:20Z
	assert.Equal(t, "Nov 14, 2023", invoice.ResolveDate(invoice.Number(1700000000000)))
}

func TestResolveDate_TextualLayouts(t *testing.T) {
	assert.Equal(t, "Jan 5, 2024", invoice.ResolveDate(invoice.Text("2024-01-05")))
	assert.Equal(t, "Mar 2, 2024", invoice.ResolveDate(invoice.Text("2024-03-02T10:30:00Z")))
	assert.Equal(t, "Dec 31, 2023", invoice.ResolveDate(invoice.Text("12/31/2023")))
}

func TestResolveDate_UnparseableStringReturnedVerbatim(t *testing.T) {
	assert.Equal(t, "next tuesday", invoice.ResolveDate(invoice.Text("next tuesday")))
}

func TestResolveDate_AbsentAndZeroRenderEmpty(t *testing.T) {
	assert.Equal(t, "", invoice.ResolveDate(invoice.Scalar{}))
	assert.Equal(t, "", invoice.ResolveDate(invoice.Number(0)))
	assert.Equal(t, "", invoice.ResolveDate(invoice.Text("  ")))
}
