// Package launcher opens applications and URIs with the platform default handler.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// System launches through xdg-open or open, and ShellExecute on Windows.
type System struct {
	goos      string
	run       func(ctx context.Context, name string, args ...string) error
	shellOpen func(target string) error
}

// New returns a launcher for the running platform
func New() *System {
	return &System{goos: runtime.GOOS, run: runCommand, shellOpen: shellExecute}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// command returns the program and arguments that open target on goos.
// target is passed as a single argument, never through a shell.
func command(goos, target string) (string, []string) {
	if goos == "darwin" {
		return "open", []string{target}
	}
	return "xdg-open", []string{target}
}

// Open waits for the handler to exit and reports a non-zero exit code as an
// error. On Windows the target goes straight to ShellExecute, which reports
// only whether the launch succeeded.
func (s *System) Open(ctx context.Context, target string) error {
	if target == "" {
		return errors.New("nothing to open")
	}
	if s.goos == "windows" {
		if err := s.shellOpen(target); err != nil {
			return fmt.Errorf("ShellExecute failed: %w", err)
		}
		return nil
	}
	name, args := command(s.goos, target)
	err := s.run(ctx, name, args...)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("exit code: %d", exitErr.ExitCode())
	}
	return fmt.Errorf("failed to run %s: %w", name, err)
}
