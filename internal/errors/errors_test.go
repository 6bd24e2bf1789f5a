package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := New(CodeDuplicateOptionID, "id 1 is set more than once", nil)
	wrapped := fmt.Errorf("load catalog: %w", base)

	if got := CodeOf(wrapped); got != CodeDuplicateOptionID {
		t.Fatalf("expected %s, got %s", CodeDuplicateOptionID, got)
	}
	if !IsCode(wrapped, CodeDuplicateOptionID) {
		t.Fatal("expected IsCode to match wrapped structured error")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("expected plain errors to map to CodeUnknown")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	inner := errors.New("disk on fire")
	if got := New(CodeSourceFailed, "", inner).Error(); got != "disk on fire" {
		t.Fatalf("expected wrapped message, got %q", got)
	}
	if got := New(CodeNotFound, "", nil).Error(); got != string(CodeNotFound) {
		t.Fatalf("expected code as message, got %q", got)
	}
	if got := New(CodeSourceFailed, "read catalog.yaml", inner).Error(); got != "read catalog.yaml: disk on fire" {
		t.Fatalf("expected message followed by cause, got %q", got)
	}
	if got := New(CodeMissingOptionID, "option \"Kiwi\" must have an id", nil).Error(); got != `option "Kiwi" must have an id` {
		t.Fatalf("expected bare message, got %q", got)
	}
	if !errors.Is(New(CodeSourceFailed, "read", inner), inner) {
		t.Fatal("expected Unwrap to expose the wrapped error")
	}
}

func TestIsAuthoring(t *testing.T) {
	t.Run("AuthoringCodes", func(t *testing.T) {
		for _, code := range []Code{CodeMalformedOption, CodeMissingOptionID, CodeDuplicateOptionID, CodeMultipleDefaultSelect} {
			if !IsAuthoring(New(code, "x", nil)) {
				t.Errorf("expected %s to be an authoring error", code)
			}
		}
	})

	t.Run("OtherCodes", func(t *testing.T) {
		if IsAuthoring(New(CodeConfigurationError, "tags without multiple", nil)) {
			t.Error("configuration errors are fatal, not authoring errors")
		}
	})
}
