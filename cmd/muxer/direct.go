package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	"golang.org/x/term"

	"muxer/pkg/muxer"
)

// directConnect runs the target's command without tmux: ssh for host
// targets, the user's shell (started in the target directory) for directory
// targets. The child runs under a PTY so full-screen remote programs see a
// real terminal with a correct window size.
//
// This is the degraded path for machines without tmux; nothing persists
// after the child exits.
func directConnect(logger *slog.Logger, t muxer.Session) error {
	var argv []string
	if t.Command != "" {
		argv = strings.Fields(t.Command)
	} else {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		argv = []string{shell}
	}
	logger.Debug("direct connect", "command", strings.Join(argv, " "), "dir", t.Dir)

	cmd := exec.Command(argv[0], argv[1:]...)
	if t.Dir != "" {
		cmd.Dir = t.Dir
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("pty start: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	// Seed the PTY size from the terminal the user is looking at. Without
	// this, some environments leave the child with a 0x0 terminal, which
	// breaks full-screen programs.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil && rows > 0 && cols > 0 {
			_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		}
	}
	watchPTYSize(ptmx)

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		oldState, rawErr := term.MakeRaw(fd)
		if rawErr == nil {
			defer func() { _ = term.Restore(fd, oldState) }()
		}
	}

	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()
	_, _ = io.Copy(os.Stdout, ptmx)

	return cmd.Wait()
}
