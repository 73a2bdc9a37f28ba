package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"image-hosting/internal/apperr"
	"image-hosting/internal/imaging"
)

const testMaxSize = 10 * 1024 * 1024

func rgbaImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 100, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgbaImage()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgbaImage(), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), []color.Color{
		color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255},
	})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func bmpBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, rgbaImage()); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	return buf.Bytes()
}

func validate(data []byte) (*imaging.Decoded, error) {
	return imaging.Validate(data, int64(len(data)), testMaxSize, imaging.DefaultAllowedFormats)
}

func TestValidateAcceptsAllowedFormats(t *testing.T) {
	cases := map[string][]byte{
		imaging.FormatPNG:  pngBytes(t),
		imaging.FormatJPEG: jpegBytes(t),
		imaging.FormatGIF:  gifBytes(t),
	}
	for want, data := range cases {
		decoded, err := validate(data)
		if err != nil {
			t.Fatalf("validate %s: %v", want, err)
		}
		if decoded.Format != want {
			t.Errorf("format = %q, want %q", decoded.Format, want)
		}
		if decoded.Image == nil {
			t.Errorf("%s: decoded image is nil", want)
		}
	}
}

func TestValidateRejectsOversizedPayload(t *testing.T) {
	// Garbage bytes over the limit must fail on size, never on decode.
	data := bytes.Repeat([]byte{0xff}, 64)
	_, err := imaging.Validate(data, int64(len(data)), 32, imaging.DefaultAllowedFormats)
	if apperr.CodeOf(err) != apperr.CodePayloadTooLarge {
		t.Fatalf("err = %v, want PayloadTooLarge", err)
	}
}

func TestValidateRejectsOversizedDeclaredLength(t *testing.T) {
	data := pngBytes(t)
	_, err := imaging.Validate(data, testMaxSize+1, testMaxSize, imaging.DefaultAllowedFormats)
	if apperr.CodeOf(err) != apperr.CodePayloadTooLarge {
		t.Fatalf("err = %v, want PayloadTooLarge", err)
	}
}

func TestValidateRejectsNonImage(t *testing.T) {
	for name, data := range map[string][]byte{
		"plain text": []byte("not-an-image"),
		"empty":      {},
	} {
		_, err := validate(data)
		if apperr.CodeOf(err) != apperr.CodeInvalidImage {
			t.Errorf("%s: err = %v, want InvalidImage", name, err)
		}
	}
}

func TestValidateRejectsCorruptHeader(t *testing.T) {
	// A valid PNG signature followed by garbage is recognized but corrupt.
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xde, 0xad}, 32)...)
	_, err := validate(data)
	if apperr.CodeOf(err) != apperr.CodeCorruptImage {
		t.Fatalf("err = %v, want CorruptImage", err)
	}
}

func TestValidateRejectsBMPByName(t *testing.T) {
	_, err := validate(bmpBytes(t))
	if apperr.CodeOf(err) != apperr.CodeUnsupportedFormat {
		t.Fatalf("err = %v, want UnsupportedFormat", err)
	}
	if !bytes.Contains([]byte(err.Error()), []byte("BMP")) {
		t.Errorf("error %q does not name the BMP format", err)
	}
}
