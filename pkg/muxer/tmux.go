package muxer

import (
	"strings"
)

// TmuxEnvVar is set by tmux inside client sessions. Its presence is the
// "already inside the multiplexer" signal.
const TmuxEnvVar = "TMUX"

// Muxer reconciles a target session descriptor against live tmux state and
// issues the create/attach/switch calls.
//
// Session existence is always queried live from tmux; nothing is cached
// between calls.
type Muxer struct {
	Runner Runner

	// WithinTmux reports whether this process already runs inside a tmux
	// client session. Computed once at startup and threaded through here
	// rather than read from the environment at each decision point.
	WithinTmux bool
}

// SessionNames returns the names of all live tmux sessions. A stopped server
// yields an empty list.
func (m *Muxer) SessionNames() []string {
	out, err := m.Runner.Run("tmux", "list-sessions", "-F", "#{session_name}")
	if err != nil {
		return nil
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// HasSession reports whether a session with exactly this name exists.
// Exact comparison matters: with a substring or regex test, a session named
// "proj" would falsely match an existing "proj2".
func (m *Muxer) HasSession(name string) bool {
	for _, n := range m.SessionNames() {
		if n == name {
			return true
		}
	}
	return false
}

// NewWindow handles window mode.
//
// Inside tmux it opens a new window in the current session; windows are not
// deduplicated by name, so there is no existence check. Outside tmux there
// is no enclosing session to add a window to, so it degrades to session
// semantics: create the named session if absent, then attach.
func (m *Muxer) NewWindow(t Session) error {
	if m.WithinTmux {
		_, err := m.Runner.Run(newWindowArgs(t)...)
		return err
	}
	if !m.HasSession(t.Name) {
		if _, err := m.Runner.Run(newSessionArgs(t, "-d")...); err != nil {
			return err
		}
	}
	return m.attach(t.Name)
}

// NewSession handles session mode. Creation is idempotent: an existing
// session is never recreated and its startup command is never restarted.
//
// Inside tmux, an absent session is created detached (so the current client
// is not disturbed) and the client is then switched to it. Outside tmux, an
// absent session is created with the attach-or-create flag in the
// foreground, so the create call is also the attach; an existing session
// just gets a fresh client attached.
func (m *Muxer) NewSession(t Session) error {
	exists := m.HasSession(t.Name)

	if m.WithinTmux {
		if !exists {
			if _, err := m.Runner.Run(newSessionArgs(t, "-d")...); err != nil {
				return err
			}
		}
		return m.switchClient(t.Name)
	}

	if !exists {
		return m.Runner.RunInteractive(newSessionArgs(t, "-A")...)
	}
	return m.attach(t.Name)
}

// attach blocks until the user detaches from the tmux client.
func (m *Muxer) attach(name string) error {
	return m.Runner.RunInteractive("tmux", "attach", "-t", name)
}

func (m *Muxer) switchClient(name string) error {
	_, err := m.Runner.Run("tmux", "switch-client", "-t", name)
	return err
}

// newSessionArgs builds a new-session argv with the given mode flag
// ("-d" detached or "-A" attach-or-create). Blank slots for the optional
// working directory and command are stripped by the runner.
func newSessionArgs(t Session, modeFlag string) []string {
	args := []string{"tmux", "new-session", modeFlag, "-s", t.Name}
	if t.Dir != "" {
		args = append(args, "-c", t.Dir)
	}
	if t.Command != "" {
		args = append(args, t.Command)
	}
	return args
}

func newWindowArgs(t Session) []string {
	args := []string{"tmux", "new-window", "-n", t.Name}
	if t.Dir != "" {
		args = append(args, "-c", t.Dir)
	}
	if t.Command != "" {
		args = append(args, t.Command)
	}
	return args
}
