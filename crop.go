package cutout

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// TrimConfig configures how a result is cropped to the detected subject.
type TrimConfig struct {
	// Margin is the margin in pixels around the subject (default: 20)
	Margin int
	// MarginPercent is the margin as a percentage of the subject dimensions (overrides Margin if > 0)
	MarginPercent float64
	// MinThreshold is the minimum mask value that counts as subject (0-255, default: 10)
	MinThreshold uint8
	// Square forces the crop to be square, using the largest dimension
	Square bool
}

type subjectBounds struct {
	MinX, MinY, MaxX, MaxY int
	Width, Height          int
}

// RemoveBackgroundTrimmed removes the background and crops the result to the
// bounding box of the detected subject.
func (e *Engine) RemoveBackgroundTrimmed(img image.Image, config *TrimConfig) (image.Image, error) {
	out, mask, err := e.cutout(img)
	if err != nil {
		return nil, err
	}
	return Trim(out, mask, config)
}

// Trim crops img to the area of mask whose values reach the configured
// threshold, plus margin. Fails with ErrNoSubject when nothing does, and
// with ErrComposite when the mask does not match the image's dimensions
// (the same size contract ApplyMask enforces).
func Trim(img image.Image, mask *image.Gray, config *TrimConfig) (image.Image, error) {
	if config == nil {
		config = &TrimConfig{
			Margin:       20,
			MinThreshold: 10,
		}
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if mb := mask.Bounds(); mb.Dx() != origW || mb.Dy() != origH {
		return nil, fmt.Errorf("%w: image is %dx%d, mask is %dx%d",
			ErrComposite, origW, origH, mb.Dx(), mb.Dy())
	}

	subject := detectSubjectBounds(mask, config.MinThreshold)
	if subject == nil {
		return nil, fmt.Errorf("%w: no mask value >= %d", ErrNoSubject, config.MinThreshold)
	}

	margin := config.Margin
	if config.MarginPercent > 0 {
		marginX := int(float64(subject.Width) * config.MarginPercent)
		marginY := int(float64(subject.Height) * config.MarginPercent)
		margin = max(marginX, marginY)
	}

	cropMinX := max(0, subject.MinX-margin)
	cropMinY := max(0, subject.MinY-margin)
	cropMaxX := min(origW, subject.MaxX+margin+1)
	cropMaxY := min(origH, subject.MaxY+margin+1)

	if config.Square {
		cropW := cropMaxX - cropMinX
		cropH := cropMaxY - cropMinY
		if cropW > cropH {
			diff := cropW - cropH
			cropMinY = max(0, cropMinY-diff/2)
			cropMaxY = min(origH, cropMaxY+diff/2)
		} else if cropH > cropW {
			diff := cropH - cropW
			cropMinX = max(0, cropMinX-diff/2)
			cropMaxX = min(origW, cropMaxX+diff/2)
		}
	}

	rect := image.Rect(cropMinX, cropMinY, cropMaxX, cropMaxY)
	return imaging.Crop(img, rect), nil
}

func detectSubjectBounds(mask *image.Gray, minThreshold uint8) *subjectBounds {
	bounds := mask.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := 0, 0
	foundPixel := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.GrayAt(x, y).Y >= minThreshold {
				foundPixel = true
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if !foundPixel {
		return nil
	}

	return &subjectBounds{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX,
		MaxY:   maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
