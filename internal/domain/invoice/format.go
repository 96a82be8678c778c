package invoice

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// displayPrinter renders numbers with en-US grouping ("1,234.50").
var displayPrinter = message.NewPrinter(language.English)

// dateDisplayLayout is the short human-readable date form.
const dateDisplayLayout = "Jan 2, 2006"

// dateLayouts are tried in order when coercing a textual date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatCurrency renders a monetary value with exactly two decimals and
// thousands grouping. Absent values render empty; a string that does not parse
// as a number comes back trimmed but otherwise unchanged. Never fails.
func FormatCurrency(v Scalar) string {
	switch v.Kind {
	case ScalarNumber:
		return groupTwoDecimals(v.Num)
	case ScalarText:
		trimmed := strings.TrimSpace(v.Str)
		if trimmed == "" {
			return ""
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
		if err != nil {
			return trimmed
		}
		return groupTwoDecimals(n)
	default:
		return ""
	}
}

func groupTwoDecimals(n float64) string {
	return displayPrinter.Sprintf("%v", number.Decimal(n,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ToNumber coerces a loose value to a float for arithmetic. Absent, malformed
// and non-finite inputs all collapse to zero so line math never fails.
func ToNumber(v Scalar) float64 {
	switch v.Kind {
	case ScalarNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0
		}
		return v.Num
	case ScalarText:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v.Str), ",", ""), 64)
		if err != nil || math.IsInf(n, 0) {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ResolveDate renders a date-like value as a short human-readable date.
// Numeric values are Unix-millisecond timestamps. A string that does not parse
// as a calendar date is returned unchanged; absent input renders empty.
func ResolveDate(v Scalar) string {
	switch v.Kind {
	case ScalarNumber:
		if v.Num == 0 {
			return ""
		}
		return time.UnixMilli(int64(v.Num)).UTC().Format(dateDisplayLayout)
	case ScalarText:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return ""
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(dateDisplayLayout)
			}
		}
		return v.Str
	default:
		return ""
	}
}
