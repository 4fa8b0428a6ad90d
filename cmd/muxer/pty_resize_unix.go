//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// watchPTYSize keeps the child PTY's size in sync with the controlling
// terminal. Best-effort: if stdout is not a TTY or size queries fail it does
// nothing. Windows has no SIGWINCH, so this lives behind a build tag.
func watchPTYSize(ptmx *os.File) {
	if ptmx == nil {
		return
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(winch)
		for range winch {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				continue
			}
			if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && rows > 0 && cols > 0 {
				_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
			}
		}
	}()
}
