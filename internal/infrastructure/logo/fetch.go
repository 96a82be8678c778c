package logo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

var errTooLarge = errors.New("logo: image exceeds size limit")

// fetch downloads rawURL following at most maxRedirects redirect hops and
// reading at most maxBytes bytes. Every failure mode returns nil — a broken
// logo source degrades the render, it never aborts it.
func (r *Resolver) fetch(ctx context.Context, rawURL string) []byte {
	current := rawURL
	for hop := 0; ; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			r.log.Warn().Err(err).Str("url", current).Msg("logo fetch: bad url")
			return nil
		}

		resp, err := r.client.Do(req)
		if err != nil {
			r.log.Warn().Err(err).Str("url", current).Msg("logo fetch failed")
			return nil
		}

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" || hop >= r.maxRedirects {
				r.log.Warn().Str("url", rawURL).Int("redirects", hop).
					Msg("logo fetch: redirect chain exhausted")
				return nil
			}
			next, err := req.URL.Parse(loc)
			if err != nil {
				return nil
			}
			current = next.String()
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			r.log.Warn().Str("url", current).Int("status", resp.StatusCode).
				Msg("logo fetch: unexpected status")
			return nil
		}

		ct := strings.ToLower(resp.Header.Get("Content-Type"))
		if ct != "" && !strings.HasPrefix(ct, "image/") {
			resp.Body.Close()
			r.log.Warn().Str("url", current).Str("content_type", ct).
				Msg("logo fetch: not an image response")
			return nil
		}

		body, err := readCapped(resp.Body, r.maxBytes)
		// Closing mid-stream aborts the connection once the cap is crossed.
		resp.Body.Close()
		if err != nil {
			r.log.Warn().Err(err).Str("url", current).Msg("logo fetch: read aborted")
			return nil
		}
		return body
	}
}

// readCapped accumulates at most max bytes from r; one extra byte is enough
// to know the stream went over the cap.
func readCapped(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errTooLarge
	}
	return b, nil
}
