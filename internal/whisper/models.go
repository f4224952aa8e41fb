package whisper

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveModel maps a model name such as "small" to a ggml model file.
// A name that already points at a file is returned unchanged. The name is not
// checked against a fixed list; unknown names simply fail to resolve.
func ResolveModel(name, dir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("model name is empty")
	}
	if isFile(name) {
		return name, nil
	}
	for _, c := range modelCandidates(name) {
		p := filepath.Join(dir, c)
		if isFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("model %q not found in %s", name, dir)
}

func modelCandidates(name string) []string {
	out := []string{"ggml-" + name + ".bin"}
	if name == "large" {
		out = append(out, "ggml-large-v3.bin", "ggml-large-v2.bin", "ggml-large-v1.bin")
	}
	return append(out, name+".bin")
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
