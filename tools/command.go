package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// commandTimeout bounds the wall clock of any single shell invocation.
const commandTimeout = 30 * time.Second

// RunCommandTool executes arbitrary shell commands. This is a trust
// boundary: whoever runs the agent is assumed to trust arbitrary command
// execution, so no allowlisting happens here.
type RunCommandTool struct {
	// Timeout overrides the default wall-clock bound when nonzero.
	Timeout time.Duration
}

func (t *RunCommandTool) Name() string { return "run_command" }

func (t *RunCommandTool) Description() string {
	return "Executes a shell command with captured output. Args: cmd (string)."
}

func (t *RunCommandTool) Parameters() []string { return []string{"cmd"} }

// Execute runs the command through the shell. Exit status zero yields the
// captured stdout; nonzero exits and launch failures are reported as text,
// never as errors.
func (t *RunCommandTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	command := args["cmd"]

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = commandTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("Command execution failed: timed out after %s", timeout), nil
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Sprintf("Error (code %d): %s", exitErr.ExitCode(), stderr.String()), nil
		}
		return fmt.Sprintf("Command execution failed: %v", err), nil
	}
	return stdout.String(), nil
}
