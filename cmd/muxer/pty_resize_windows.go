//go:build windows

package main

import "os"

// watchPTYSize is a no-op on Windows: there is no SIGWINCH, and the ConPTY
// layer handles resize propagation itself.
func watchPTYSize(ptmx *os.File) {}
