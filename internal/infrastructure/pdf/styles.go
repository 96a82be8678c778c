package pdf

import "strings"

// RGB is a 24-bit color.
type RGB struct {
	R, G, B int
}

// Palette mirrors the web client's slate/blue scheme.
var (
	colorText        = RGB{15, 23, 42}    // #0f172a
	colorMuted       = RGB{100, 116, 139} // #64748b
	colorPrimary     = RGB{37, 99, 235}   // #2563eb
	colorPrimaryDark = RGB{29, 78, 216}   // #1d4ed8
	colorLightBg     = RGB{248, 250, 252} // #f8fafc
	colorBorder      = RGB{226, 232, 240} // #e2e8f0
	colorWhite       = RGB{255, 255, 255} // #ffffff
	colorHeaderInk   = RGB{219, 234, 254} // #dbeafe
	colorSuccess     = RGB{34, 197, 94}   // #22c55e
	colorWarning     = RGB{249, 115, 22}  // #f97316
	colorDanger      = RGB{239, 68, 68}   // #ef4444
)

// StatusStyle is the pill color pair derived from a status label.
type StatusStyle struct {
	Fill RGB
	Text RGB
}

// StyleForStatus maps a free-text status (case-insensitive) to its pill style.
// Unknown statuses fall back to the dark primary.
func StyleForStatus(status string) StatusStyle {
	switch strings.ToLower(status) {
	case "paid", "completed", "settled":
		return StatusStyle{Fill: colorSuccess, Text: colorWhite}
	case "overdue", "late", "unpaid":
		return StatusStyle{Fill: colorDanger, Text: colorWhite}
	case "pending", "in progress", "draft":
		return StatusStyle{Fill: colorWarning, Text: colorWhite}
	default:
		return StatusStyle{Fill: colorPrimaryDark, Text: colorWhite}
	}
}
