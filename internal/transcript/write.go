package transcript

import (
	"encoding/json"
	"io"
)

// WriteResult encodes r as a single JSON object followed by a newline.
func WriteResult(w io.Writer, r Result) error {
	if r.Segments == nil {
		r.Segments = []Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// WriteError encodes {"error": msg} followed by a newline.
func WriteError(w io.Writer, msg string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(ErrorReport{Error: msg})
}
