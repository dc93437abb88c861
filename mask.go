package cutout

import (
	"fmt"
	"image"
)

// ApplyMask composites mask onto original as its alpha channel: every output
// pixel keeps the original RGB and takes the mask's value at the same
// coordinate as alpha. No blending beyond what the mask already encodes.
func ApplyMask(original image.Image, mask *image.Gray) (*image.NRGBA, error) {
	ob, mb := original.Bounds(), mask.Bounds()
	w, h := ob.Dx(), ob.Dy()
	if w != mb.Dx() || h != mb.Dy() {
		return nil, fmt.Errorf("%w: image is %dx%d, mask is %dx%d",
			ErrComposite, w, h, mb.Dx(), mb.Dy())
	}

	src := toNRGBA(original)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w; x++ {
			base := x * 4
			dst[base+0] = row[base+0]
			dst[base+1] = row[base+1]
			dst[base+2] = row[base+2]
			dst[base+3] = mask.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y
		}
	}
	return out, nil
}

// resizeMask scales a single-channel mask to w x h. The mask is expanded to
// an opaque NRGBA image only for the duration of the generic resize, then
// collapsed back to one channel.
func resizeMask(mask *image.Gray, w, h int) (*image.Gray, error) {
	mb := mask.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, mb.Dx(), mb.Dy()))
	for y := 0; y < mb.Dy(); y++ {
		for x := 0; x < mb.Dx(); x++ {
			v := mask.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y
			base := y*rgba.Stride + x*4
			rgba.Pix[base+0] = v
			rgba.Pix[base+1] = v
			rgba.Pix[base+2] = v
			rgba.Pix[base+3] = 255
		}
	}

	resized, err := resizeRGBA(rgba, w, h)
	if err != nil {
		return nil, err
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = resized.Pix[y*resized.Stride+x*4]
		}
	}
	return out, nil
}
