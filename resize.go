package cutout

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// resizeRGBA scales img to w x h with Lanczos resampling. RGB is multiplied
// by alpha before resampling and divided back out after, so transparent
// pixels cannot bleed color into their opaque neighbours. A resize to the
// image's current dimensions returns a pixel-identical copy: the
// premultiply round-trip is lossy and must not run when no resampling
// happens.
func resizeRGBA(img *image.NRGBA, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid target size %dx%d", ErrResize, w, h)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source image %dx%d", ErrResize, b.Dx(), b.Dy())
	}
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(img), nil
	}

	pre := premultiply(img)
	out := imaging.Resize(pre, w, h, imaging.Lanczos)
	unpremultiply(out)
	return out, nil
}

// premultiply returns a copy of img with each pixel's RGB scaled by its own
// alpha. The result still uses the NRGBA representation so that the generic
// resampler treats the four channels as independent raw values.
func premultiply(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 255 {
			continue
		}
		pix[i+0] = uint8((uint32(pix[i+0])*a + 127) / 255)
		pix[i+1] = uint8((uint32(pix[i+1])*a + 127) / 255)
		pix[i+2] = uint8((uint32(pix[i+2])*a + 127) / 255)
	}
	return out
}

// unpremultiply divides RGB by alpha in place. Alpha 0 leaves RGB at 0
// rather than dividing by zero.
func unpremultiply(img *image.NRGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		a := uint32(pix[i+3])
		switch a {
		case 255:
		case 0:
			pix[i+0], pix[i+1], pix[i+2] = 0, 0, 0
		default:
			for c := 0; c < 3; c++ {
				v := (uint32(pix[i+c])*255 + a/2) / a
				if v > 255 {
					v = 255
				}
				pix[i+c] = uint8(v)
			}
		}
	}
}

// toNRGBA normalizes any decoded image to a zero-origin *image.NRGBA.
func toNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}
