package cutout

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestResizeRGBA_InvalidTarget(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"both zero", 0, 0},
		{"negative", -1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resizeRGBA(img, tt.w, tt.h)
			if !errors.Is(err, ErrResize) {
				t.Errorf("resizeRGBA(%d, %d) error = %v; want ErrResize", tt.w, tt.h, err)
			}
		})
	}
}

func TestResizeRGBA_EmptySource(t *testing.T) {
	tests := []struct {
		name string
		img  *image.NRGBA
	}{
		{"zero width", image.NewNRGBA(image.Rect(0, 0, 0, 4))},
		{"zero height", image.NewNRGBA(image.Rect(0, 0, 4, 0))},
		{"empty", image.NewNRGBA(image.Rect(0, 0, 0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resizeRGBA(tt.img, 8, 8)
			if !errors.Is(err, ErrResize) {
				t.Errorf("resizeRGBA on empty source error = %v; want ErrResize", err)
			}
		})
	}
}

func TestResizeRGBA_SameSizeIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 31), G: uint8(y * 31), B: uint8((x + y) * 15), A: uint8(x * y * 4),
			})
		}
	}

	out, err := resizeRGBA(img, 8, 8)
	if err != nil {
		t.Fatalf("resizeRGBA returned error: %v", err)
	}
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Error("resize to current dimensions changed pixel data")
	}
	if &out.Pix[0] == &img.Pix[0] {
		t.Error("expected a copy, got the original buffer")
	}
}

func TestResizeRGBA_Dimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	out, err := resizeRGBA(img, 20, 5)
	if err != nil {
		t.Fatalf("resizeRGBA returned error: %v", err)
	}
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 5 {
		t.Errorf("expected 20x5, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResizeRGBA_FullyTransparentStaysEmpty(t *testing.T) {
	// Every pixel has color but zero alpha. After premultiplied resampling
	// the un-premultiply step must leave RGB at 0 instead of dividing by zero.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 200
		img.Pix[i+1] = 150
		img.Pix[i+2] = 100
		img.Pix[i+3] = 0
	}

	out, err := resizeRGBA(img, 8, 8)
	if err != nil {
		t.Fatalf("resizeRGBA returned error: %v", err)
	}
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 || out.Pix[i+1] != 0 || out.Pix[i+2] != 0 {
			t.Fatalf("pixel %d: expected RGB (0,0,0) for zero alpha, got (%d,%d,%d)",
				i/4, out.Pix[i], out.Pix[i+1], out.Pix[i+2])
		}
		if out.Pix[i+3] != 0 {
			t.Fatalf("pixel %d: expected alpha 0, got %d", i/4, out.Pix[i+3])
		}
	}
}

func TestResizeRGBA_OpaqueColorSurvivesDownscale(t *testing.T) {
	// A fully opaque uniform image must keep its color through
	// premultiply, resample and un-premultiply.
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 10
		img.Pix[i+1] = 20
		img.Pix[i+2] = 30
		img.Pix[i+3] = 255
	}

	out, err := resizeRGBA(img, 8, 8)
	if err != nil {
		t.Fatalf("resizeRGBA returned error: %v", err)
	}
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 10 || out.Pix[i+1] != 20 || out.Pix[i+2] != 30 || out.Pix[i+3] != 255 {
			t.Fatalf("pixel %d: expected (10,20,30,255), got (%d,%d,%d,%d)",
				i/4, out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3])
		}
	}
}

func TestPremultiplyRoundTripOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(i)
		img.Pix[i+1] = uint8(i + 1)
		img.Pix[i+2] = uint8(i + 2)
		img.Pix[i+3] = 255
	}

	pre := premultiply(img)
	if !bytes.Equal(pre.Pix, img.Pix) {
		t.Error("premultiply changed fully opaque pixels")
	}
	unpremultiply(pre)
	if !bytes.Equal(pre.Pix, img.Pix) {
		t.Error("unpremultiply changed fully opaque pixels")
	}
}
