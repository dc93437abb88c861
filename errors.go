package cutout

import "errors"

// Every pipeline stage fails with its own sentinel so callers can tell which
// stage broke with errors.Is instead of parsing messages. Stage errors wrap
// these with fmt.Errorf and %w.
var (
	// ErrLoad reports that the ONNX model could not be loaded.
	ErrLoad = errors.New("cutout: load model failed")
	// ErrDecode reports that a source image could not be decoded.
	ErrDecode = errors.New("cutout: decode image failed")
	// ErrEncode reports that a result image could not be encoded.
	ErrEncode = errors.New("cutout: encode image failed")
	// ErrResize reports an invalid resize target.
	ErrResize = errors.New("cutout: resize failed")
	// ErrPreprocess reports that the model input tensor could not be built.
	ErrPreprocess = errors.New("cutout: preprocess failed")
	// ErrInference reports that the ONNX session failed to run.
	ErrInference = errors.New("cutout: inference failed")
	// ErrComposite reports a mask/image dimension mismatch. Every operation
	// that pairs a mask with an image (ApplyMask, Trim) enforces the same
	// size contract with this sentinel.
	ErrComposite = errors.New("cutout: composite failed")
	// ErrMaskShape reports a model output with the wrong number of scores.
	ErrMaskShape = errors.New("cutout: unexpected mask shape")
	// ErrNoSubject reports that no pixel of the mask reached the trim threshold.
	ErrNoSubject = errors.New("cutout: no subject detected")
)
