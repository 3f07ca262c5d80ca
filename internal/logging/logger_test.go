package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := New(debug)
		if err != nil {
			t.Fatalf("New(%v) returned error: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("New(%v) returned nil logger", debug)
		}
		if got := logger.Core().Enabled(zap.DebugLevel); got != debug {
			t.Errorf("New(%v): debug level enabled = %v", debug, got)
		}
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) should return a usable logger")
	}

	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop should return the provided logger")
	}
}
