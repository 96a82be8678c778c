package logo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// forceFormatVariant rewrites Cloudinary delivery URLs so the CDN transcodes
// the asset. The transformation segment goes after `upload` and before the
// `v<digits>` version segment, matching the delivery URL grammar.
// ──────────────────────────────────────────────────────────────────────────────

func TestForceFormatVariant_InsertsBeforeVersionSegment(t *testing.T) {
	got, ok := forceFormatVariant(
		"https://res.cloudinary.com/demo/image/upload/v1699999999/logos/acme.webp", "png")
	assert.True(t, ok)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/f_png/v1699999999/logos/acme.webp", got)
}

func TestForceFormatVariant_NoVersionSegment(t *testing.T) {
	got, ok := forceFormatVariant(
		"https://res.cloudinary.com/demo/image/upload/logos/acme.webp", "png")
	assert.True(t, ok)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/f_png/logos/acme.webp", got)
}

func TestForceFormatVariant_PreservesQuery(t *testing.T) {
	got, ok := forceFormatVariant(
		"https://res.cloudinary.com/demo/image/upload/v1/acme.webp?cb=42", "png")
	assert.True(t, ok)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/f_png/v1/acme.webp?cb=42", got)
}

func TestForceFormatVariant_NotRewritable(t *testing.T) {
	cases := map[string]string{
		"different host":     "https://cdn.example.com/image/upload/v1/acme.webp",
		"no upload segment":  "https://res.cloudinary.com/demo/image/fetch/v1/acme.webp",
		"nothing after":      "https://res.cloudinary.com/demo/image/upload",
		"format already set": "https://res.cloudinary.com/demo/image/upload/f_auto/v1/acme.webp",
	}
	for name, rawURL := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := forceFormatVariant(rawURL, "png")
			assert.False(t, ok)
		})
	}
}
