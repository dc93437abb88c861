// Package cutout removes the background from raster images using a
// pretrained saliency model served by ONNX Runtime. The loaded model is an
// explicit, immutable Engine that may be shared across goroutines; every
// other buffer lives for exactly one RemoveBackground call.
package cutout

import (
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Config controls how the ONNX session is created.
type Config struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// IntraOpNumThreads bounds parallelism inside one operator (0 = runtime default).
	IntraOpNumThreads int
	// InterOpNumThreads bounds parallelism across operators (0 = runtime default).
	InterOpNumThreads int
	// CpuMemArena enables the runtime's CPU memory arena.
	CpuMemArena bool
	// MemPattern enables memory pattern optimization.
	MemPattern bool
}

// session is the seam between the pipeline and ONNX Runtime: planar model
// input in, raw saliency scores out.
type session interface {
	run(input []float32) ([]float32, error)
	destroy() error
}

// Engine holds a loaded model. Construct it once with New; it is safe for
// concurrent use.
type Engine struct {
	session   session
	sessionMu sync.Mutex
}

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initEnvironment() error {
	ortInitOnce.Do(func() {
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

type ortSession struct {
	session *ort.DynamicAdvancedSession
}

func newORTSession(cfg *Config) (*ortSession, error) {
	if err := initEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()

	if cfg.IntraOpNumThreads > 0 {
		options.SetIntraOpNumThreads(cfg.IntraOpNumThreads)
	}
	if cfg.InterOpNumThreads > 0 {
		options.SetInterOpNumThreads(cfg.InterOpNumThreads)
	}
	options.SetCpuMemArena(cfg.CpuMemArena)
	options.SetMemPattern(cfg.MemPattern)
	options.SetExecutionMode(ort.ExecutionModeSequential)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll)

	s, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{modelInputName},
		[]string{modelOutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("create ONNX session: %w", err)
	}
	return &ortSession{session: s}, nil
}

// run wraps one inference call: the batch dimension of size 1 is added here
// and stripped from the output. Tensors are created and destroyed per call.
func (s *ortSession) run(input []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 3, modelSize, modelSize), input)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, modelSize, modelSize))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := s.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor}); err != nil {
		return nil, err
	}

	scores := make([]float32, modelSize*modelSize)
	copy(scores, outputTensor.GetData())
	return scores, nil
}

func (s *ortSession) destroy() error {
	return s.session.Destroy()
}

// New loads the model described by cfg and returns a ready Engine.
func New(cfg *Config) (*Engine, error) {
	s, err := newORTSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return &Engine{session: s}, nil
}

// Close releases the underlying session.
func (e *Engine) Close() error {
	return e.session.destroy()
}

// RemoveBackground returns img with its background replaced by transparency.
// The result has the same dimensions as the input. The first failing stage
// aborts the run; no partial result is ever returned.
func (e *Engine) RemoveBackground(img image.Image) (image.Image, error) {
	out, _, err := e.cutout(img)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// cutout runs the full pipeline and also returns the full-resolution mask so
// callers can post-process the result (see RemoveBackgroundTrimmed).
func (e *Engine) cutout(img image.Image) (*image.NRGBA, *image.Gray, error) {
	src := toNRGBA(img)

	input, err := encodeTensor(src)
	if err != nil {
		return nil, nil, err
	}

	e.sessionMu.Lock()
	scores, err := e.session.run(input)
	e.sessionMu.Unlock()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInference, err)
	}

	mask, err := decodeMask(scores)
	if err != nil {
		return nil, nil, err
	}

	b := src.Bounds()
	full, err := resizeMask(mask, b.Dx(), b.Dy())
	if err != nil {
		return nil, nil, err
	}

	out, err := ApplyMask(src, full)
	if err != nil {
		return nil, nil, err
	}
	return out, full, nil
}
