package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndCode(t *testing.T) {
	var out bytes.Buffer
	code := -1

	exitf(&out, func(c int) { code = c }, "import failed: %s", "Unknown box position 'x' for box 'a'")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := "import failed: Unknown box position 'x' for box 'a'\n"
	if out.String() != want {
		t.Fatalf("expected output %q, got %q", want, out.String())
	}
}
