package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	// Register decoders so image.DecodeConfig can sniff the container. The
	// extra x/image formats are registered on purpose: a valid BMP or TIFF
	// must be rejected as an unsupported format by name, not mistaken for a
	// non-image byte stream.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"image-hosting/internal/apperr"
)

// Decoded is the output of a successful validation: a fully decoded image
// plus its canonical format tag.
type Decoded struct {
	Image  image.Image
	Format string
}

// Validate runs the upload gates in order, short-circuiting on the first
// failure: size limit, structural verify pass, independent full decode, and
// allowed-format check. It performs no disk or database I/O.
func Validate(data []byte, declaredSize, maxSize int64, allowedFormats []string) (*Decoded, error) {
	if declaredSize > maxSize || int64(len(data)) > maxSize {
		return nil, apperr.PayloadTooLarge(
			fmt.Sprintf("file exceeds maximum file size of %d bytes", maxSize))
	}

	// Structural verify pass: parses the container header without
	// materializing pixel data.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, apperr.InvalidImage("invalid image file")
		}
		return nil, apperr.CorruptImage(fmt.Sprintf("invalid or corrupted image file: %v", err))
	}

	// Independent full decode of the same bytes. The verify pass above reads
	// only the header, so a fresh reader is required for actual use.
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.DecodeFailure(fmt.Sprintf("failed to decode image: %v", err))
	}

	tag := strings.ToUpper(format)
	if !formatAllowed(tag, allowedFormats) {
		return nil, apperr.UnsupportedFormat(
			fmt.Sprintf("image format %s is not supported", tag))
	}

	return &Decoded{Image: img, Format: tag}, nil
}

func formatAllowed(tag string, allowed []string) bool {
	for _, f := range allowed {
		if tag == f {
			return true
		}
	}
	return false
}
