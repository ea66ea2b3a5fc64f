package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Engine scores one feature vector and returns the engine's raw text
// output. Implementations may shell out to a model script, call a model
// server, or run in-process; the pipeline does not care which.
type Engine interface {
	Infer(ctx context.Context, features []float64) (string, error)
}

// ErrEmptyOutput is returned when the engine exits cleanly but prints
// nothing to stdout.
var ErrEmptyOutput = errors.New("no prediction output received")

// LaunchError wraps a failure to start the engine process at all
// (missing interpreter, missing script, permissions).
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start inference process: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExecError wraps a non-zero exit from the engine process.
type ExecError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("inference process exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("inference process exited with code %d: %s", e.ExitCode, e.Stderr)
}

// ProcessEngine runs the scoring model as a child process per call,
// passing the features as positional string arguments.
type ProcessEngine struct {
	command    string
	scriptPath string
	logger     *zap.Logger
}

// NewProcessEngine creates an Engine backed by an external script, e.g.
// command "python3" with scriptPath "ml/predict.py".
func NewProcessEngine(command, scriptPath string, logger *zap.Logger) *ProcessEngine {
	return &ProcessEngine{
		command:    command,
		scriptPath: scriptPath,
		logger:     logger,
	}
}

// Infer spawns the engine with the 13 features in vector order and waits
// for it to finish. stdout and stderr are captured separately; trimmed
// stdout is the payload. No retries happen at this layer.
func (e *ProcessEngine) Infer(ctx context.Context, features []float64) (string, error) {
	args := make([]string, 0, len(features)+1)
	args = append(args, e.scriptPath)
	for _, f := range features {
		args = append(args, strconv.FormatFloat(f, 'f', -1, 64))
	}

	cmd := exec.CommandContext(ctx, e.command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execErr := &ExecError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
			e.logger.Error("Inference process failed",
				zap.Int("exit_code", execErr.ExitCode),
				zap.String("stderr", execErr.Stderr))
			return "", execErr
		}
		e.logger.Error("Failed to start inference process", zap.Error(err))
		return "", &LaunchError{Err: err}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}
