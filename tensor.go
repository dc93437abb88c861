package cutout

import (
	"fmt"
	"image"
)

// Fixed contract with the paired model: resolution, tensor names and the
// 0.5-centred normalization are dictated by the network, not configurable.
const (
	modelSize       = 1024
	modelInputName  = "input"
	modelOutputName = "output"
)

// encodeTensor converts img into the model's planar float input: resize to
// modelSize x modelSize, drop alpha, lay the channels out channel-major
// (all R, then all G, then all B) and map each byte from [0,255] to
// [-0.5, 0.5].
func encodeTensor(img *image.NRGBA) ([]float32, error) {
	resized, err := resizeRGBA(img, modelSize, modelSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreprocess, err)
	}

	const plane = modelSize * modelSize
	data := make([]float32, 3*plane)
	pix := resized.Pix
	stride := resized.Stride

	for y := 0; y < modelSize; y++ {
		row := pix[y*stride : y*stride+modelSize*4]
		for x := 0; x < modelSize; x++ {
			base := x * 4
			idx := y*modelSize + x
			data[0*plane+idx] = float32(row[base+0])/255.0 - 0.5
			data[1*plane+idx] = float32(row[base+1])/255.0 - 0.5
			data[2*plane+idx] = float32(row[base+2])/255.0 - 0.5
		}
	}

	return data, nil
}

// decodeMask min-max normalizes the model's raw scores into a grayscale
// confidence mask at model resolution. A constant output carries no
// foreground/background contrast, so it decodes to an all-zero mask instead
// of dividing by zero.
func decodeMask(scores []float32) (*image.Gray, error) {
	if len(scores) != modelSize*modelSize {
		return nil, fmt.Errorf("%w: got %d scores, want %d", ErrMaskShape, len(scores), modelSize*modelSize)
	}

	lo, hi := scores[0], scores[0]
	for _, v := range scores[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	mask := image.NewGray(image.Rect(0, 0, modelSize, modelSize))
	if hi == lo {
		return mask, nil
	}

	scale := 255.0 / (hi - lo)
	for i, v := range scores {
		s := (v - lo) * scale
		if s > 255 {
			s = 255
		}
		mask.Pix[i] = uint8(s)
	}
	return mask, nil
}
