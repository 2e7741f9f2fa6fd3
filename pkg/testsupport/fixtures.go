package testsupport

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// CompareGolden diffs want against got; empty means equal.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString returns the contents of a golden file.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CaptureTemplateOutput calls render with a buffer and returns what render
// returned alongside what it wrote.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (returned, written string) {
	t.Helper()
	var buf bytes.Buffer
	returned, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return returned, buf.String()
}
