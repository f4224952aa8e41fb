//go:build whisper_cpp

package whisper

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/rs/zerolog/log"
)

// Available reports whether the whisper.cpp engine is compiled in.
func Available() bool { return true }

// EngineCPP is the whisper.cpp-backed implementation of Engine.
type EngineCPP struct {
	model whisperpkg.Model
}

// Load reads a ggml model file. The caller must Close the engine.
func Load(modelPath string) (Engine, error) {
	m, err := whisperpkg.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", modelPath, err)
	}
	log.Debug().Str("model", modelPath).Bool("multilingual", m.IsMultilingual()).Msg("whisper: model loaded")
	return &EngineCPP{model: m}, nil
}

func (e *EngineCPP) Close() error {
	if e.model != nil {
		return e.model.Close()
	}
	return nil
}

// Transcribe runs a full-context transcription and collects every segment.
func (e *EngineCPP) Transcribe(samples []float32, opts Options) (Transcription, error) {
	if len(samples) == 0 {
		return Transcription{}, nil
	}

	ctx, err := e.model.NewContext()
	if err != nil {
		return Transcription{}, fmt.Errorf("create context: %w", err)
	}

	threads := opts.Threads
	if threads == 0 {
		threads = uint(runtime.NumCPU())
	}
	ctx.SetThreads(threads)

	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = "auto"
	}
	if e.model.IsMultilingual() {
		if err := ctx.SetLanguage(lang); err != nil {
			return Transcription{}, fmt.Errorf("set language %q: %w", lang, err)
		}
	} else if lang != "auto" && lang != "en" {
		return Transcription{}, fmt.Errorf("set language %q: model is English-only", lang)
	}

	var progressCB whisperpkg.ProgressCallback
	if opts.OnProgress != nil {
		progressCB = func(p int) { opts.OnProgress(p) }
	}

	log.Debug().Int("samples", len(samples)).Uint("threads", threads).Str("language", lang).Msg("whisper: processing")
	if err := ctx.Process(samples, nil, nil, progressCB); err != nil {
		return Transcription{}, fmt.Errorf("process audio: %w", err)
	}

	var (
		out   Transcription
		texts []string
	)
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Transcription{}, fmt.Errorf("next segment: %w", err)
		}
		out.Segments = append(out.Segments, Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
		texts = append(texts, seg.Text)
	}
	out.Text = strings.Join(texts, "")

	out.Language = ctx.Language()
	if out.Language == "" || out.Language == "auto" {
		out.Language = ctx.DetectedLanguage()
	}

	log.Debug().
		Int("segments", len(out.Segments)).
		Str("lang", out.Language).
		Msg("whisper: transcription complete")
	return out, nil
}
