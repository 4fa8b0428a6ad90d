package muxer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file. Every field has a built-in
// default; the launcher works with no settings file at all.
//
// Example:
//
//	rule_file: ~/.muxer.rc
//	ssh_config: ~/.ssh/config
//	ssh_session_prefix: SSH_
//	default_dirs:
//	  - ~/work
//	  - ~/code/*
type Settings struct {
	// RuleFile overrides the rule file location (default ~/.muxer.rc).
	RuleFile string `yaml:"rule_file,omitempty"`

	// SSHConfig overrides the SSH client config location
	// (default ~/.ssh/config).
	SSHConfig string `yaml:"ssh_config,omitempty"`

	// SSHSessionPrefix is prepended to host aliases when naming sessions
	// (default "SSH_").
	SSHSessionPrefix string `yaml:"ssh_session_prefix,omitempty"`

	// DefaultDirs replace the built-in rule defaults used when the rule file
	// is absent. Same grammar as rule file lines.
	DefaultDirs []string `yaml:"default_dirs,omitempty"`
}

// SettingsPathCandidates returns possible settings file paths in priority
// order. An explicit path wins, then $MUXER_CONFIG, then XDG locations.
func SettingsPathCandidates(explicitPath string) []string {
	var out []string
	if explicitPath != "" {
		out = append(out, explicitPath)
	}
	if env := os.Getenv("MUXER_CONFIG"); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "muxer", "config.yaml"))
	}
	home, _ := os.UserHomeDir()
	if home != "" {
		out = append(out, filepath.Join(home, ".config", "muxer", "config.yaml"))
	}
	return out
}

// LoadSettings loads the first settings file found among the candidates.
// No file at all is fine: zero-value Settings (all defaults) and an empty
// path are returned. A file that exists but cannot be parsed or validated is
// an error — silently ignoring a broken settings file would be worse than
// failing loudly.
func LoadSettings(explicitPath string) (*Settings, string, error) {
	for _, p := range SettingsPathCandidates(explicitPath) {
		p = expandPath(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, p, fmt.Errorf("read settings %s: %w", p, err)
		}
		var s Settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, p, fmt.Errorf("parse settings %s: %w", p, err)
		}
		if err := s.Validate(); err != nil {
			return nil, p, fmt.Errorf("invalid settings %s: %w", p, err)
		}
		return &s, p, nil
	}
	return &Settings{}, "", nil
}

// Validate performs basic sanity checks.
func (s *Settings) Validate() error {
	if strings.ContainsAny(s.SSHSessionPrefix, " \t") {
		return fmt.Errorf("ssh_session_prefix %q must not contain whitespace", s.SSHSessionPrefix)
	}
	for i, d := range s.DefaultDirs {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("default_dirs[%d]: empty entry", i)
		}
	}
	return nil
}

// RuleFilePath returns the rule file location, defaulting to ~/.muxer.rc.
func (s *Settings) RuleFilePath(home string) string {
	if s.RuleFile != "" {
		return expandPath(s.RuleFile)
	}
	return filepath.Join(home, ".muxer.rc")
}

// SSHConfigPath returns the SSH client config location, defaulting to the
// standard per-user ~/.ssh/config.
func (s *Settings) SSHConfigPath(home string) string {
	if s.SSHConfig != "" {
		return expandPath(s.SSHConfig)
	}
	return filepath.Join(home, ".ssh", "config")
}

// SessionPrefix returns the SSH session name prefix, defaulting to "SSH_".
func (s *Settings) SessionPrefix() string {
	if s.SSHSessionPrefix != "" {
		return s.SSHSessionPrefix
	}
	return DefaultSSHSessionPrefix
}

// RuleDefaults returns the rules used when the rule file is absent.
func (s *Settings) RuleDefaults() []string {
	if len(s.DefaultDirs) > 0 {
		return s.DefaultDirs
	}
	return DefaultRules
}
