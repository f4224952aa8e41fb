// Package audio turns an input media file into the mono 16 kHz float32
// samples the whisper engine consumes.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// TargetRate is the sample rate Load produces.
const TargetRate = 16000

// Options controls how Load obtains samples.
type Options struct {
	// FFmpegPath is the ffmpeg binary, looked up in PATH when relative.
	FFmpegPath string
	// TempDir holds the intermediate WAV. Empty means os.TempDir().
	TempDir string
}

// Load decodes path into mono 16 kHz samples. PCM WAV files are decoded
// in-process; everything else goes through ffmpeg first.
func Load(ctx context.Context, path string, opts Options) ([]float32, error) {
	ok, err := IsPCMWAV(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	if ok {
		return loadWAV(path)
	}

	dir, err := os.MkdirTemp(opts.TempDir, "whisper-transcribe-*")
	if err != nil {
		return nil, fmt.Errorf("audio: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	wavPath := filepath.Join(dir, "audio_16k.wav")
	if err := ConvertToWAV(ctx, opts.FFmpegPath, path, wavPath); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	return loadWAV(wavPath)
}

func loadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	samples, rate, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	if rate != TargetRate {
		log.Debug().Int("from", rate).Int("to", TargetRate).Msg("audio: resampling")
		samples = ResampleLinear(samples, rate, TargetRate)
	}
	return samples, nil
}
