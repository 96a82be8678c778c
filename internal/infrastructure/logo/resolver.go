// Package logo turns a company logo reference (inline bytes, data URI, remote
// URL, or local path) into validated raster bytes for the PDF renderer.
//
// Contract: resolution never fails the render. Network errors, oversized
// responses, broken redirect chains and unsupported formats all degrade to
// "no logo" with a warning log entry.
package logo

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/accountsy/billing-api/internal/domain/invoice"
)

// Bounds applied when the caller leaves Options fields at zero.
const (
	DefaultMaxBytes     = 5 << 20 // 5 MiB
	DefaultMaxRedirects = 3
	DefaultTimeout      = 15 * time.Second
)

// Image is validated raster bytes plus the sniffed format.
type Image struct {
	Bytes  []byte
	Format string // FormatPNG or FormatJPEG
}

// Options bound the remote fetch.
type Options struct {
	MaxBytes     int64
	MaxRedirects int
	Timeout      time.Duration
}

// Resolver resolves logo references. Safe for concurrent use.
type Resolver struct {
	client       *http.Client
	log          zerolog.Logger
	maxBytes     int64
	maxRedirects int
}

// NewResolver builds a resolver with the given bounds (zero values pick the
// documented defaults).
func NewResolver(opts Options, log zerolog.Logger) *Resolver {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Resolver{
		client: &http.Client{
			Timeout: opts.Timeout,
			// Hops are counted by the resolver itself so the bound is exact.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log:          log,
		maxBytes:     opts.MaxBytes,
		maxRedirects: opts.MaxRedirects,
	}
}

// Resolve produces validated logo bytes, or nil when the reference is empty
// or cannot be resolved to a supported image.
func (r *Resolver) Resolve(ctx context.Context, ref invoice.LogoReference) *Image {
	if len(ref.Raw) > 0 {
		return r.validate(ref.Raw, "<buffer>")
	}

	trimmed := strings.TrimSpace(ref.Value)
	if trimmed == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(trimmed, "data:image"):
		return r.fromDataURI(trimmed)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return r.fromURL(ctx, trimmed)
	default:
		return r.fromFile(trimmed)
	}
}

func (r *Resolver) fromDataURI(uri string) *Image {
	idx := strings.Index(uri, "base64,")
	if idx < 0 {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(uri[idx+len("base64,"):])
	if err != nil {
		return nil
	}
	return r.validate(b, "data-uri")
}

func (r *Resolver) fromFile(path string) *Image {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("logo file unreadable")
		return nil
	}
	return r.validate(b, path)
}

func (r *Resolver) fromURL(ctx context.Context, rawURL string) *Image {
	b := r.fetch(ctx, rawURL)
	if b == nil {
		return nil
	}
	if format, ok := DetectFormat(b); ok {
		return &Image{Bytes: b, Format: format}
	}

	// One retry through the CDN's forced-PNG variant before giving up.
	if fallback, ok := forceFormatVariant(rawURL, "png"); ok && fallback != rawURL {
		if fb := r.fetch(ctx, fallback); fb != nil {
			if format, ok := DetectFormat(fb); ok {
				return &Image{Bytes: fb, Format: format}
			}
		}
	}

	r.warnUnsupported(rawURL)
	return nil
}

func (r *Resolver) validate(b []byte, source string) *Image {
	format, ok := DetectFormat(b)
	if !ok {
		r.warnUnsupported(source)
		return nil
	}
	return &Image{Bytes: b, Format: format}
}

func (r *Resolver) warnUnsupported(source string) {
	if len(source) > 80 {
		source = source[:80]
	}
	r.log.Warn().Str("logo", source).Msg("skipping invoice logo: unsupported image format")
}
