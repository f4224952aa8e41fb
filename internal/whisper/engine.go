package whisper

import (
	"errors"
	"time"
)

// LibraryName names the native library the engine is built on. It appears in
// the dependency error reported when the engine is not compiled in.
const LibraryName = "whisper.cpp"

// SampleRate is the only input rate the engine accepts.
const SampleRate = 16000

// ErrUnavailable is returned by Load when the binary was built without the
// whisper_cpp build tag.
var ErrUnavailable = errors.New("whisper: engine not compiled in (build with -tags whisper_cpp)")

// Segment is a raw segment as produced by the model.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Transcription is the raw engine output. Text is the concatenation of the
// segment texts, untrimmed.
type Transcription struct {
	Text     string
	Language string
	Segments []Segment
}

// Options tunes a single Transcribe call.
type Options struct {
	// Language is an ISO code or "auto" for detection.
	Language string
	// Threads is the number of decoder threads. Zero means runtime.NumCPU().
	Threads uint
	// OnProgress receives the completion percentage (0-100). May be nil.
	OnProgress func(percent int)
}

// Engine is a loaded model.
// Implementations may be a stub (no cgo) or backed by whisper.cpp (build tag: whisper_cpp).
type Engine interface {
	// Transcribe runs the model over mono 16 kHz PCM32F samples.
	Transcribe(samples []float32, opts Options) (Transcription, error)
	Close() error
}

// Loader loads a model file into an Engine. Load is the default.
type Loader func(modelPath string) (Engine, error)
