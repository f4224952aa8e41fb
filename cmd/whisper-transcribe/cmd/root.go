package cmd

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/obiente/translate/whisper-transcribe/internal/app"
	"github.com/obiente/translate/whisper-transcribe/internal/config"
	"github.com/obiente/translate/whisper-transcribe/internal/transcript"
)

var version = "v0.1.0"

// newRunner is swapped in tests to run without the native engine.
var newRunner = app.New

type options struct {
	configFile string
	model      string
	language   string
	modelsDir  string
	threads    int
	progress   bool
}

// Execute runs the command line and returns the process exit code. The
// transcription document is the only thing ever written to stdout; help,
// progress and the error report all go to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	setupLogger(stderr, "")

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stderr)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var appErr *app.Error
		if !errors.As(err, &appErr) {
			appErr = app.Usage(err)
		}
		log.Debug().Str("kind", appErr.Kind.String()).Msg("transcription failed")
		_ = transcript.WriteError(stderr, appErr.Error())
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "whisper-transcribe <audio_file>",
		Short: "Transcribe an audio or video file with a local Whisper model and print JSON",
		Long: `Transcribe an audio or video file with a local whisper.cpp model.

On success a single JSON document is written to stdout:
  {"text": "...", "segments": [{"start": 0.0, "end": 2.5, "text": "..."}]}

Progress and errors are written to stderr; errors as {"error": "..."} with exit status 1.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.model, "model", config.DefaultModel, "Whisper model size: tiny, base, small, medium, large (or a path to a ggml model file)")
	f.StringVar(&opts.language, "language", "auto", "spoken language code, or auto to detect it")
	f.IntVar(&opts.threads, "threads", 0, "decoder threads (0 uses every CPU)")
	f.StringVar(&opts.modelsDir, "models-dir", "", "directory holding ggml-<model>.bin files")
	f.StringVar(&opts.configFile, "config", "", "YAML config file")
	f.BoolVar(&opts.progress, "progress", false, "draw a transcription progress bar on stderr")

	return cmd
}

func run(cmd *cobra.Command, opts *options, path string, stdout, stderr io.Writer) error {
	// a missing input is reported before anything in the environment can fail
	if err := app.CheckFile(path); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return app.Runtime(err)
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = opts.model
	}
	if flags.Changed("language") {
		cfg.Language = opts.language
	}
	if flags.Changed("threads") {
		cfg.Threads = opts.threads
	}
	if flags.Changed("models-dir") {
		cfg.ModelsDir = opts.modelsDir
	}
	if err := cfg.Validate(); err != nil {
		return app.Usage(err)
	}

	setupLogger(stderr, cfg.LogLevel)

	runner := newRunner(cfg)
	if opts.progress {
		runner.Progress = stderr
	}

	res, err := runner.Run(cmd.Context(), app.RequestFromConfig(path, cfg))
	if err != nil {
		return err
	}
	if err := transcript.WriteResult(stdout, res); err != nil {
		return app.Runtime(err)
	}
	return nil
}

// setupLogger sends human-readable log lines to w.
func setupLogger(w io.Writer, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	lvl := zerolog.InfoLevel
	if level != "" {
		if l, err := zerolog.ParseLevel(level); err == nil {
			lvl = l
		}
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
