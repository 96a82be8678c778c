package logo

import "bytes"

// Image format names as gofpdf expects them.
const (
	FormatPNG  = "PNG"
	FormatJPEG = "JPG"
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
)

// IsPNG reports whether the buffer starts with the PNG signature.
func IsPNG(b []byte) bool {
	return len(b) > 8 && bytes.HasPrefix(b, pngSignature)
}

// IsJPEG reports whether the buffer starts with the JPEG signature.
func IsJPEG(b []byte) bool {
	return len(b) > 3 && bytes.HasPrefix(b, jpegSignature)
}

// DetectFormat sniffs the image format from the leading magic bytes.
// Declared metadata (content-type, extension) is never trusted.
func DetectFormat(b []byte) (string, bool) {
	switch {
	case IsPNG(b):
		return FormatPNG, true
	case IsJPEG(b):
		return FormatJPEG, true
	default:
		return "", false
	}
}
