package muxer

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DiscoverSSHHosts parses the OpenSSH client config at path and returns one
// SSH host candidate per literal Host alias containing query
// (case-sensitive), sorted by alias.
//
// Only Host declaration lines contribute aliases. A declaration line
// containing '*' is a wildcard block and contributes nothing; individual
// alias tokens containing ssh pattern characters ('?') or negation ('!') are
// skipped as well. Option lines such as HostName never match because the
// keyword comparison is against the whole first field.
//
// There is no sensible default when the file does not exist, so a missing
// file is a configuration error. Callers decide whether that degrades to an
// empty host list or aborts.
func DiscoverSSHHosts(path, query string) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ssh config %s: %w", path, err)
	}
	defer f.Close()

	var out []Candidate
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.Contains(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Host") {
			continue
		}
		for _, alias := range fields[1:] {
			if strings.ContainsAny(alias, "?!") {
				continue
			}
			if !strings.Contains(alias, query) {
				continue
			}
			out = append(out, Candidate{Kind: KindSSHHost, Alias: alias})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan ssh config %s: %w", path, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}
