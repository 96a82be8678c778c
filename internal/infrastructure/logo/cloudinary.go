package logo

import (
	"net/url"
	"regexp"
	"strings"
)

var cloudinaryVersionRe = regexp.MustCompile(`^v\d+`)

// forceFormatVariant rewrites a Cloudinary delivery URL so the CDN transcodes
// the asset to the given format, by inserting an `f_<format>` transformation
// segment after `upload` (before the version segment when one exists).
// Returns false when the URL is not a rewritable Cloudinary URL: different
// host, no upload segment, nothing after it, or a format already forced.
func forceFormatVariant(rawURL, format string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !strings.Contains(u.Hostname(), "res.cloudinary.com") {
		return "", false
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 {
		return "", false
	}

	rest := segments[uploadIdx+1:]
	if len(rest) == 0 {
		return "", false
	}
	for _, seg := range rest {
		if strings.HasPrefix(seg, "f_") {
			return "", false
		}
	}

	versionIdx := -1
	for i, seg := range rest {
		if cloudinaryVersionRe.MatchString(seg) {
			versionIdx = i
			break
		}
	}

	formatSegment := "f_" + format
	rewritten := make([]string, 0, len(segments)+1)
	rewritten = append(rewritten, segments[:uploadIdx+1]...)
	if versionIdx == -1 {
		rewritten = append(rewritten, formatSegment)
		rewritten = append(rewritten, rest...)
	} else {
		rewritten = append(rewritten, rest[:versionIdx]...)
		rewritten = append(rewritten, formatSegment)
		rewritten = append(rewritten, rest[versionIdx:]...)
	}

	u.Path = "/" + strings.Join(rewritten, "/")
	return u.String(), true
}
