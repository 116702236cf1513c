package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := WithMetadata(CodeBoxUnknownPosition, "Unknown box position 'x' for box 'a'", map[string]string{"identifier": "a"})
	wrapped := fmt.Errorf("prepare box a: %w", err)

	if !stderrors.Is(wrapped, New(CodeBoxUnknownPosition, "")) {
		t.Fatal("expected wrapped error to match its code")
	}
	if stderrors.Is(wrapped, New(CodeBoxUnknownType, "")) {
		t.Fatal("expected wrapped error not to match another code")
	}
	if !HasCode(wrapped, CodeBoxUnknownPosition) {
		t.Fatal("expected HasCode to find the code")
	}
	if got := CodeOf(wrapped); got != CodeBoxUnknownPosition {
		t.Fatalf("expected code %q, got %q", CodeBoxUnknownPosition, got)
	}
}

func TestCodeOfUnknownForPlainErrors(t *testing.T) {
	if got := CodeOf(stderrors.New("boom")); got != CodeUnknown {
		t.Fatalf("expected %q for plain error, got %q", CodeUnknown, got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("expected %q for nil, got %q", CodeUnknown, got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("syntax error")
	err := Wrap(CodeManifestMalformed, "decode manifest", cause)

	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	if err.Error() != "decode manifest: syntax error" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
