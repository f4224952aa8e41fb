// Package app runs one transcription request end to end: it validates the
// input, probes for the engine, loads the model, transcribes and normalizes
// the result. Writing the result or the error report is left to the caller.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/obiente/translate/whisper-transcribe/internal/audio"
	"github.com/obiente/translate/whisper-transcribe/internal/config"
	"github.com/obiente/translate/whisper-transcribe/internal/stdio"
	"github.com/obiente/translate/whisper-transcribe/internal/transcript"
	"github.com/obiente/translate/whisper-transcribe/internal/whisper"
)

// Request is a single invocation.
type Request struct {
	AudioPath string
	Model     string
	Language  string
	Threads   uint
}

// Runner holds the collaborators for Run. The zero value is not usable; use
// New.
type Runner struct {
	cfg *config.Config

	// Available is the capability probe for the engine.
	Available func() bool
	// Load opens a resolved model file.
	Load whisper.Loader
	// Decode turns the input file into 16 kHz mono samples.
	Decode func(ctx context.Context, path string, opts audio.Options) ([]float32, error)
	// Divert scopes engine calls so nothing they print reaches stdout.
	Divert func(fn func() error) error

	// Progress, when non-nil, receives a progress bar during transcription.
	Progress io.Writer
}

// New returns a Runner wired to the real engine.
func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:       cfg,
		Available: whisper.Available,
		Load:      whisper.Load,
		Decode:    audio.Load,
		Divert:    stdio.Run,
	}
}

// RequestFromConfig fills a Request from the effective configuration.
func RequestFromConfig(path string, cfg *config.Config) Request {
	return Request{
		AudioPath: path,
		Model:     cfg.Model,
		Language:  cfg.Language,
		Threads:   uint(cfg.Threads),
	}
}

// CheckFile fails with a FileNotFound error unless path is an existing
// regular file.
func CheckFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return ErrFileNotFound(path)
	}
	return nil
}

// Run executes the request. Every returned error is an *Error.
func (r *Runner) Run(ctx context.Context, req Request) (res transcript.Result, err error) {
	if err := CheckFile(req.AudioPath); err != nil {
		return transcript.Result{}, err
	}
	if !r.Available() {
		return transcript.Result{}, ErrDependencyMissing()
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("transcription panicked")
			res, err = transcript.Result{}, Runtime(fmt.Errorf("%v", p))
		}
	}()

	raw, err := r.transcribe(ctx, req)
	if err != nil {
		return transcript.Result{}, Runtime(err)
	}
	return transcript.New(raw), nil
}

func (r *Runner) transcribe(ctx context.Context, req Request) (whisper.Transcription, error) {
	log.Info().Msgf("Loading Whisper model '%s'...", req.Model)

	modelPath, err := whisper.ResolveModel(req.Model, r.cfg.ModelsDir)
	if err != nil {
		return whisper.Transcription{}, err
	}

	var engine whisper.Engine
	if err := r.Divert(func() error {
		var lerr error
		engine, lerr = r.Load(modelPath)
		return lerr
	}); err != nil {
		return whisper.Transcription{}, err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing model")
		}
	}()

	log.Info().Msgf("Transcribing: %s", req.AudioPath)

	samples, err := r.Decode(ctx, req.AudioPath, audio.Options{
		FFmpegPath: r.cfg.FFmpegPath,
		TempDir:    r.cfg.TempDir,
	})
	if err != nil {
		return whisper.Transcription{}, err
	}
	log.Debug().Int("samples", len(samples)).Float64("seconds", float64(len(samples))/whisper.SampleRate).Msg("audio decoded")

	opts := whisper.Options{Language: req.Language, Threads: req.Threads}
	done := false
	if r.Progress != nil {
		bar := newProgressBar(r.Progress)
		opts.OnProgress = bar.update
		defer func() { bar.finish(done) }()
	}

	var out whisper.Transcription
	err = r.Divert(func() error {
		var terr error
		out, terr = engine.Transcribe(samples, opts)
		return terr
	})
	done = err == nil
	if err != nil {
		return whisper.Transcription{}, err
	}

	log.Debug().Str("language", out.Language).Int("segments", len(out.Segments)).Msg("transcription done")
	return out, nil
}
