package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"image-hosting/internal/apperr"
)

const jpegQuality = 90

// Encode applies the format-specific re-encode policy and returns the bytes
// to store. JPEG sources are normalized to RGB or 8-bit grayscale and
// re-encoded at a fixed quality; PNG is re-encoded losslessly with best
// compression; GIF is written through verbatim so multi-frame images survive.
func Encode(d *Decoded, original []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch d.Format {
	case FormatJPEG:
		img := normalizeForJPEG(d.Image)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, apperr.StorageWriteFailure(fmt.Sprintf("failed to encode jpeg: %v", err))
		}
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, d.Image); err != nil {
			return nil, apperr.StorageWriteFailure(fmt.Sprintf("failed to encode png: %v", err))
		}
	case FormatGIF:
		return original, nil
	default:
		return nil, apperr.UnsupportedFormat("cannot encode format " + d.Format)
	}
	return buf.Bytes(), nil
}

// normalizeForJPEG converts palette, CMYK and other exotic color modes to
// straight RGB. Grayscale and native RGB/YCbCr sources pass through.
func normalizeForJPEG(img image.Image) image.Image {
	switch img.(type) {
	case *image.Gray, *image.YCbCr, *image.RGBA, *image.NRGBA:
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
