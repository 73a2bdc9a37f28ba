package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"image-hosting/internal/imaging"
)

func TestEncodeNormalizesPalettedJPEG(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), []color.Color{
		color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255},
	})
	decoded := &imaging.Decoded{Image: pal, Format: imaging.FormatJPEG}

	out, err := imaging.Encode(decoded, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	stored, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("re-decode stored jpeg: %v", err)
	}
	switch stored.(type) {
	case *image.YCbCr, *image.RGBA, *image.NRGBA, *image.Gray:
	default:
		t.Errorf("stored jpeg decoded to %T, want an RGB or grayscale image", stored)
	}
}

func TestEncodeKeepsGrayscaleJPEG(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	decoded := &imaging.Decoded{Image: gray, Format: imaging.FormatJPEG}

	out, err := imaging.Encode(decoded, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	stored, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("re-decode stored jpeg: %v", err)
	}
	if _, ok := stored.(*image.Gray); !ok {
		t.Errorf("stored jpeg decoded to %T, want *image.Gray", stored)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	decoded := &imaging.Decoded{Image: rgbaImage(), Format: imaging.FormatPNG}

	out, err := imaging.Encode(decoded, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	stored, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("re-decode stored png: %v", err)
	}
	if stored.Bounds() != decoded.Image.Bounds() {
		t.Errorf("bounds = %v, want %v", stored.Bounds(), decoded.Image.Bounds())
	}
}

func TestEncodeWritesGIFThrough(t *testing.T) {
	original := gifBytes(t)
	decoded, err := validate(original)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	out, err := imaging.Encode(decoded, original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(out, original) {
		t.Error("gif bytes were re-encoded, want verbatim passthrough")
	}
}
