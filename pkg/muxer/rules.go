package muxer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultRules apply when no rule file exists. Each entry follows the rule
// file grammar below.
var DefaultRules = []string{
	"~/notes",
	"~/Syncthing",
	"~/scratch",
	"~/code/*",
}

// Rule file grammar, one rule per line:
//   - a line starting with '!' excludes the named path from the results
//   - a line ending with '*' expands to the immediate children of the parent
//   - any other line is a literal directory path (existence checked at
//     discovery time, not at parse time)
//
// '~' and environment variables are expanded in all three forms.
const (
	exclusionMarker = "!"
	wildcardSuffix  = "*"
)

// RuleSet is the parsed rule file: candidate directory paths (pre-filter)
// plus the exclusion set.
type RuleSet struct {
	// Dirs are absolute candidate paths. Wildcard lines are already expanded;
	// literal lines may name directories that do not exist.
	Dirs []string

	// Excludes holds absolute paths subtracted from the candidates.
	Excludes map[string]struct{}
}

// LoadRules reads the rule file at path. A missing file is not an error: the
// provided defaults are parsed instead. Any other read failure is a
// configuration error.
func LoadRules(path string, defaults []string) (*RuleSet, error) {
	lines := defaults
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		lines = strings.Split(string(data), "\n")
	case errors.Is(err, fs.ErrNotExist):
		// fall back to defaults
	default:
		return nil, fmt.Errorf("read rule file %s: %w", path, err)
	}
	return ParseRules(lines), nil
}

// ParseRules parses rule lines into a RuleSet. Wildcard expansion reads the
// parent directory; an unreadable parent contributes no candidates rather
// than failing the whole parse.
func ParseRules(lines []string) *RuleSet {
	rs := &RuleSet{Excludes: make(map[string]struct{})}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, exclusionMarker):
			p := expandPath(strings.TrimPrefix(line, exclusionMarker))
			if p != "" {
				rs.Excludes[p] = struct{}{}
			}
		case strings.HasSuffix(line, wildcardSuffix):
			parent := expandPath(strings.TrimSuffix(line, wildcardSuffix))
			entries, err := os.ReadDir(parent)
			if err != nil {
				continue
			}
			for _, e := range entries {
				rs.Dirs = append(rs.Dirs, filepath.Join(parent, e.Name()))
			}
		default:
			rs.Dirs = append(rs.Dirs, expandPath(line))
		}
	}
	return rs
}

// DiscoverDirectories filters the rule set's candidates down to existing,
// non-hidden, non-excluded directories whose final path segment contains
// query (case-sensitive), and returns them as directory candidates sorted by
// home-relative path.
//
// A directory outside the home tree is skipped, not an error: discovery
// failures degrade to fewer candidates.
func DiscoverDirectories(logger *slog.Logger, rules *RuleSet, home, query string) []Candidate {
	var out []Candidate
	for _, dir := range rules.Dirs {
		base := filepath.Base(dir)
		if !strings.Contains(base, query) {
			continue
		}
		if strings.HasPrefix(base, ".") {
			continue
		}
		if _, excluded := rules.Excludes[dir]; excluded {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(home, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			logger.Debug("skipping directory outside home", "dir", dir)
			continue
		}
		out = append(out, Candidate{Kind: KindDirectory, Path: dir, Rel: rel})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out
}

// expandPath expands environment variables and a leading "~" in a path.
// Returns "" for empty input.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
			// "~user" is not handled; it never appears in rule files in
			// practice and would require a userdb lookup.
		}
	}
	return p
}
