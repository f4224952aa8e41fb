package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxStderr bounds how much ffmpeg diagnostics end up in an error message.
const maxStderr = 2048

// ConvertToWAV uses ffmpeg to extract mono 16 kHz PCM WAV from any audio or
// video container ffmpeg understands.
func ConvertToWAV(ctx context.Context, ffmpeg, in, out string) error {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	bin, err := exec.LookPath(ffmpeg)
	if err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}

	// ffmpeg -y -i input -vn -ac 1 -ar 16000 -acodec pcm_s16le -f wav output
	cmd := exec.CommandContext(ctx, bin,
		"-nostdin", "-hide_banner", "-loglevel", "error",
		"-y", "-i", in,
		"-vn", "-ac", "1", "-ar", "16000",
		"-acodec", "pcm_s16le",
		"-f", "wav",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug().Str("input", in).Str("output", out).Msg("audio: converting with ffmpeg")
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[len(msg)-maxStderr:]
		}
		if msg == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}
	return nil
}
