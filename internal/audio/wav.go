package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

// IsPCMWAV reports whether the file at path is an integer PCM WAV file that
// DecodeWAV can read without conversion.
func IsPCMWAV(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return false, nil
	}
	return dec.WavAudioFormat == wavFormatPCM && dec.NumChans > 0, nil
}

// DecodeWAV decodes integer PCM WAV data into mono float32 samples in [-1,1]
// and returns them with the source sample rate. Multi-channel input is
// averaged down to one channel.
func DecodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		if err == io.EOF {
			err = nil
		} else {
			return nil, 0, fmt.Errorf("decode wav: %w", err)
		}
	}
	if buf == nil {
		return nil, 0, errors.New("empty wav buffer")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	max := float32(int64(1) << (bitDepth - 1))

	channels := channelCount(buf, dec)
	out := downmix(buf.Data, channels, max)

	sr := int(dec.SampleRate)
	if sr == 0 && buf.Format != nil {
		sr = buf.Format.SampleRate
	}
	if sr == 0 {
		sr = 16000
	}
	return out, sr, nil
}

func channelCount(buf *goaudio.IntBuffer, dec *wav.Decoder) int {
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		return buf.Format.NumChannels
	}
	if dec.NumChans > 0 {
		return int(dec.NumChans)
	}
	return 1
}

// downmix averages interleaved frames into mono and normalizes by max.
// A trailing partial frame is dropped.
func downmix(data []int, channels int, max float32) []float32 {
	if channels <= 1 {
		out := make([]float32, len(data))
		for i, v := range data {
			out[i] = float32(v) / max
		}
		return out
	}
	frames := len(data) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(data[i*channels+c])
		}
		out[i] = sum / float32(channels) / max
	}
	return out
}

// ResampleLinear resamples PCM32F from inRate to outRate using linear interpolation.
func ResampleLinear(samples []float32, inRate, outRate int) []float32 {
	if inRate <= 0 || outRate <= 0 || inRate == outRate || len(samples) == 0 {
		if inRate == outRate {
			return append([]float32(nil), samples...)
		}
		return samples
	}
	ratio := float64(outRate) / float64(inRate)
	outLen := int(float64(len(samples)) * ratio)
	if outLen <= 1 {
		outLen = 1
	}
	out := make([]float32, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		i0 := int(srcPos)
		if i0 >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(srcPos - float64(i0))
		s0 := samples[i0]
		s1 := samples[i0+1]
		out[i] = s0 + (s1-s0)*frac
	}
	return out
}
