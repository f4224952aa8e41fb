// Package transcript holds the JSON document the adapter prints and the
// normalization that turns raw engine output into it.
package transcript

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/obiente/translate/whisper-transcribe/internal/whisper"
)

// Segment is one time-aligned piece of the transcript. Times are seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the document written to stdout on success.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// ErrorReport is the document written to stderr on failure.
type ErrorReport struct {
	Error string `json:"error"`
}

// New builds a Result from raw engine output: the full text and every segment
// text are trimmed, segment bounds are rounded to two decimals and kept in
// the order the engine produced them.
func New(t whisper.Transcription) Result {
	segs := lo.Map(t.Segments, func(s whisper.Segment, _ int) Segment {
		start := Round2(s.Start.Seconds())
		end := Round2(s.End.Seconds())
		if end < start {
			end = start
		}
		return Segment{Start: start, End: end, Text: strings.TrimSpace(s.Text)}
	})
	if segs == nil {
		segs = []Segment{}
	}
	return Result{Text: strings.TrimSpace(t.Text), Segments: segs}
}

// Round2 rounds v to two decimal places using the shortest decimal
// representation, so exact ties round half to even.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}
