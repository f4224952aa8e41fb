//go:build !whisper_cpp

package whisper

// Available reports whether the whisper.cpp engine is compiled in.
func Available() bool { return false }

// Load always fails without the whisper_cpp build tag.
func Load(modelPath string) (Engine, error) { return nil, ErrUnavailable }
