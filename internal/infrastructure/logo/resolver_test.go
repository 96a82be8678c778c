package logo_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountsy/billing-api/internal/domain/invoice"
	"github.com/accountsy/billing-api/internal/infrastructure/logo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

// fakePNG carries the PNG signature plus padding; the resolver sniffs magic
// bytes only, so this is enough to count as a valid logo.
var fakePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3, 4, 5, 6, 7, 8}

func newTestResolver(opts logo.Options) *logo.Resolver {
	return logo.NewResolver(opts, zerolog.Nop())
}

// redirectChainServer serves /img directly and /r<n> as a chain of n redirect
// hops ending at /img.
func redirectChainServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/r") {
			n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/r"))
			require.NoError(t, err)
			next := "/img"
			if n > 1 {
				next = fmt.Sprintf("/r%d", n-1)
			}
			http.Redirect(w, r, next, http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Direct sources: raw bytes, data URI, local file
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_RawBytes(t *testing.T) {
	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Raw: fakePNG})
	require.NotNil(t, img)
	assert.Equal(t, logo.FormatPNG, img.Format)
	assert.Equal(t, fakePNG, img.Bytes)
}

func TestResolve_RawBytesNotAnImage(t *testing.T) {
	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Raw: []byte("GIF89a0000")})
	assert.Nil(t, img, "unsupported formats degrade to no logo, never error")
}

func TestResolve_DataURI(t *testing.T) {
	r := newTestResolver(logo.Options{})
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(fakePNG)
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: uri})
	require.NotNil(t, img)
	assert.Equal(t, logo.FormatPNG, img.Format)
}

func TestResolve_DataURIBadBase64(t *testing.T) {
	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: "data:image/png;base64,@@not-base64@@"})
	assert.Nil(t, img)
}

func TestResolve_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, fakePNG, 0o600))

	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: path})
	require.NotNil(t, img)
	assert.Equal(t, logo.FormatPNG, img.Format)
}

func TestResolve_MissingFile(t *testing.T) {
	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: filepath.Join(t.TempDir(), "nope.png")})
	assert.Nil(t, img)
}

func TestResolve_EmptyReference(t *testing.T) {
	r := newTestResolver(logo.Options{})
	assert.Nil(t, r.Resolve(context.Background(), invoice.LogoReference{}))
	assert.Nil(t, r.Resolve(context.Background(), invoice.LogoReference{Value: "   "}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Remote fetch: redirect bound, size cap, content-type guard
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_RemoteURL(t *testing.T) {
	srv := redirectChainServer(t)
	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL + "/img"})
	require.NotNil(t, img)
	assert.Equal(t, logo.FormatPNG, img.Format)
}

func TestResolve_ExactlyMaxRedirectsSucceeds(t *testing.T) {
	srv := redirectChainServer(t)
	r := newTestResolver(logo.Options{MaxRedirects: 3})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL + "/r3"})
	require.NotNil(t, img, "a chain of exactly three redirects is within the bound")
}

func TestResolve_OneRedirectTooManyFails(t *testing.T) {
	srv := redirectChainServer(t)
	r := newTestResolver(logo.Options{MaxRedirects: 3})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL + "/r4"})
	assert.Nil(t, img, "the fourth redirect hop must abort the fetch")
}

func TestResolve_OversizedResponseRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(fakePNG)
		w.Write(make([]byte, 64))
	}))
	t.Cleanup(srv.Close)

	r := newTestResolver(logo.Options{MaxBytes: 32})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL})
	assert.Nil(t, img, "responses over the byte cap are discarded, not truncated")
}

func TestResolve_NonImageContentTypeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(fakePNG)
	}))
	t.Cleanup(srv.Close)

	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL})
	assert.Nil(t, img)
}

func TestResolve_RemoteErrorStatusRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL})
	assert.Nil(t, img)
}

func TestResolve_RemoteUnsupportedFormatRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/gif")
		w.Write([]byte("GIF89a0000"))
	}))
	t.Cleanup(srv.Close)

	r := newTestResolver(logo.Options{})
	img := r.Resolve(context.Background(), invoice.LogoReference{Value: srv.URL})
	assert.Nil(t, img, "only PNG and JPEG are accepted; no transcode path for plain hosts")
}
