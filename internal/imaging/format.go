package imaging

// Canonical format tags for the allowed image encodings.
const (
	FormatJPEG = "JPEG"
	FormatPNG  = "PNG"
	FormatGIF  = "GIF"
)

// DefaultAllowedFormats is the closed set of formats accepted for upload.
var DefaultAllowedFormats = []string{FormatJPEG, FormatPNG, FormatGIF}

// InferExtension maps a canonical format tag to its file extension and MIME
// type. Unknown tags fall back to a generic extension; the validator rejects
// those before any caller can reach this branch.
func InferExtension(format string) (ext, mimeType string) {
	switch format {
	case FormatJPEG:
		return ".jpg", "image/jpeg"
	case FormatPNG:
		return ".png", "image/png"
	case FormatGIF:
		return ".gif", "image/gif"
	default:
		return ".img", "application/octet-stream"
	}
}
