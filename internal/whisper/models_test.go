package whisper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("ggml"), 0o644))
	return p
}

func TestResolveModel(t *testing.T) {
	dir := t.TempDir()
	small := touch(t, dir, "ggml-small.bin")
	largeV3 := touch(t, dir, "ggml-large-v3.bin")
	custom := touch(t, dir, "custom.bin")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ggml prefix", in: "small", want: small},
		{name: "large falls back to v3", in: "large", want: largeV3},
		{name: "bare file name", in: "custom", want: custom},
		{name: "direct path", in: custom, want: custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveModel(tt.in, dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveModelPrefersExactLarge(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ggml-large-v2.bin")
	exact := touch(t, dir, "ggml-large.bin")

	got, err := ResolveModel("large", dir)
	require.NoError(t, err)
	assert.Equal(t, exact, got)
}

func TestResolveModelUnknownName(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveModel("gigantic", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "gigantic" not found`)

	_, err = ResolveModel("", dir)
	assert.Error(t, err)
}

func TestResolveModelIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ggml-tiny.bin"), 0o755))

	_, err := ResolveModel("tiny", dir)
	assert.Error(t, err)
}
