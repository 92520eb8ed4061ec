package util

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/ui"
	"os/exec"
	"strings"
	"time"
)

const DefaultCmdTimeout = 2 * time.Second

// SafeCmdExecution runs the given executable, provided its file permissions
// only allow root to modify it, and returns its trimmed stdout.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, executable, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", fmt.Errorf("command %s timed out after %s", executable, timeout)
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
