package muxer

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. The launcher needs two call shapes:
// captured output for queries (list-sessions) and detached creation, and a
// blocking foreground call with inherited stdio for attach, where tmux takes
// over the terminal until the user detaches.
type Runner interface {
	// Run strips blank tokens from args, logs the command line, executes it
	// synchronously, and returns captured stdout. The external tool's exit
	// status is deliberately not inspected; its own stderr is the
	// user-visible failure channel.
	Run(args ...string) (string, error)

	// RunInteractive executes with inherited stdin/stdout/stderr and blocks
	// until the process exits. Used for attach and attach-or-create calls.
	RunInteractive(args ...string) error
}

// ExecRunner is the os/exec implementation of Runner.
type ExecRunner struct {
	// Logger receives one debug entry per invocation. Constructed once in
	// main and injected; never a process-wide default.
	Logger *slog.Logger

	// DryRun logs the command line and skips execution.
	DryRun bool
}

// NormalizeArgv trims tokens and drops blank ones. Callers assemble argv
// positionally and leave optional slots empty, so blanks are expected.
func NormalizeArgv(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (r *ExecRunner) Run(args ...string) (string, error) {
	argv := NormalizeArgv(args)
	if len(argv) == 0 {
		return "", errors.New("run: empty command")
	}
	if r.DryRun {
		r.logger().Info("dry-run", "command", strings.Join(argv, " "))
		return "", nil
	}
	r.logger().Debug("run", "command", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// A non-zero exit produces no useful output for the caller; that is the
	// whole failure contract at this layer.
	_ = cmd.Run()
	return stdout.String(), nil
}

func (r *ExecRunner) RunInteractive(args ...string) error {
	argv := NormalizeArgv(args)
	if len(argv) == 0 {
		return errors.New("run: empty command")
	}
	if r.DryRun {
		r.logger().Info("dry-run (interactive)", "command", strings.Join(argv, " "))
		return nil
	}
	r.logger().Debug("run interactive", "command", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
