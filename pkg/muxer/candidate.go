// Package muxer contains candidate discovery, selection, and tmux session
// reconciliation for the muxer launcher.
package muxer

import (
	"path/filepath"
	"strings"
)

// SSHMarker prefixes SSH host candidates in the picker list so they are
// visually distinct from directory candidates.
const SSHMarker = "ssh: "

// DefaultSSHSessionPrefix is prepended to the host alias when deriving the
// tmux session name for an SSH candidate. Overridable via the settings file.
const DefaultSSHSessionPrefix = "SSH_"

// CandidateKind distinguishes the two candidate variants.
type CandidateKind int

const (
	// KindDirectory is a local project directory under the home tree.
	KindDirectory CandidateKind = iota

	// KindSSHHost is a literal Host alias from the SSH client config.
	KindSSHHost
)

// Candidate is a selectable target: either a local project directory or an
// SSH host alias. The kind is an explicit tag; nothing downstream dispatches
// on the display string.
type Candidate struct {
	Kind CandidateKind

	// Path is the absolute directory path. KindDirectory only.
	Path string

	// Rel is the home-relative path shown in the picker. KindDirectory only.
	Rel string

	// Alias is the SSH host alias. KindSSHHost only.
	Alias string
}

// Display returns the string shown in the picker list.
func (c Candidate) Display() string {
	if c.Kind == KindSSHHost {
		return SSHMarker + c.Alias
	}
	return c.Rel
}

// Session describes the tmux session to reconcile against: a name, an
// optional startup command (empty means the default shell), and an optional
// working directory (empty means inherited).
type Session struct {
	Name    string
	Command string
	Dir     string
}

// Target derives the session descriptor for this candidate.
//
// SSH hosts get a prefixed session name and a remote-login command; they have
// no working directory. Directories use their final path segment as the name
// and start the default shell in the directory.
func (c Candidate) Target(sshPrefix string) Session {
	if sshPrefix == "" {
		sshPrefix = DefaultSSHSessionPrefix
	}
	if c.Kind == KindSSHHost {
		return Session{
			Name:    SanitizeSessionName(sshPrefix + c.Alias),
			Command: "ssh " + c.Alias,
		}
	}
	return Session{
		Name: SanitizeSessionName(filepath.Base(c.Path)),
		Dir:  c.Path,
	}
}

// SanitizeSessionName makes a name safe to use as a tmux session name.
// tmux rewrites '.' and ':' in session names (they are target separators),
// so a round trip through new-session/has-session would otherwise disagree
// about the name.
func SanitizeSessionName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ':':
			return '_'
		default:
			return r
		}
	}, name)
}
