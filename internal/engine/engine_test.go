package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/zap"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("subprocess tests use sh scripts")
	}
	path := filepath.Join(t.TempDir(), "predict.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func testFeatures() []float64 {
	return []float64{10.5, 3.2, 45.1, 2.8, 19.5, 25.0, 32.0, 48.0, 120.0, 0.35, 12.0, 8.5, 38.0}
}

func TestProcessEngine_Infer(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'The chance of rockfall is 42.00%.'\n")
	eng := NewProcessEngine("sh", script, zap.NewNop())

	out, err := eng.Infer(context.Background(), testFeatures())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "The chance of rockfall is 42.00%." {
		t.Errorf("output = %q", out)
	}
}

func TestProcessEngine_PassesFeaturesAsPositionalArgs(t *testing.T) {
	// Prints arg count, first and last arg.
	script := writeScript(t, "#!/bin/sh\neval \"last=\\${$#}\"\necho \"$#:$1:$last\"\n")
	eng := NewProcessEngine("sh", script, zap.NewNop())

	out, err := eng.Infer(context.Background(), testFeatures())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "13:10.5:38" {
		t.Errorf("output = %q, want \"13:10.5:38\"", out)
	}
}

func TestProcessEngine_NonZeroExit(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'model blew up' >&2\nexit 3\n")
	eng := NewProcessEngine("sh", script, zap.NewNop())

	_, err := eng.Infer(context.Background(), testFeatures())
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %v", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", execErr.ExitCode)
	}
	if execErr.Stderr != "model blew up" {
		t.Errorf("Stderr = %q, want \"model blew up\"", execErr.Stderr)
	}
}

func TestProcessEngine_EmptyOutput(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\nexit 0\n")
	eng := NewProcessEngine("sh", script, zap.NewNop())

	_, err := eng.Infer(context.Background(), testFeatures())
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestProcessEngine_WhitespaceOnlyOutputIsEmpty(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho ''\necho '   '\n")
	eng := NewProcessEngine("sh", script, zap.NewNop())

	_, err := eng.Infer(context.Background(), testFeatures())
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestProcessEngine_LaunchFailure(t *testing.T) {
	eng := NewProcessEngine("/nonexistent/interpreter", "ml/predict.py", zap.NewNop())

	_, err := eng.Infer(context.Background(), testFeatures())
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
}
