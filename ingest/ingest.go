// SPDX-License-Identifier: MIT
// Package ingest reads and writes the plain-text input files of lvmatch.
//
// Preference file, one agent per line:
//
//	alice: bob,carol,dave
//	erin:
//
// A name, a colon, then a comma-separated ranked list that may be partial
// or empty. Whitespace around names and entries is ignored; blank lines
// and lines starting with '#' are skipped.
//
// Blacklist file, one forbidden pair per line:
//
//	alice,dave
//
// The first field is the proposer, the second the receiver.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/lvmatch/core"
)

var (
	// ErrSyntax marks a malformed line.
	ErrSyntax = errors.New("ingest: syntax error")

	// ErrDuplicate marks an agent defined twice or ranked twice in a list.
	ErrDuplicate = errors.New("ingest: duplicate entry")
)

const commentPrefix = "#"

// ReadPrefs parses a preference file.
func ReadPrefs(r io.Reader) (core.Prefs, error) {
	prefs := make(core.Prefs)
	err := eachLine(r, func(no int, line string) error {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("line %d: missing ':': %w", no, ErrSyntax)
		}
		agent := core.AgentID(strings.TrimSpace(name))
		if agent == "" {
			return fmt.Errorf("line %d: empty agent name: %w", no, ErrSyntax)
		}
		if _, dup := prefs[agent]; dup {
			return fmt.Errorf("line %d: agent %q: %w", no, agent, ErrDuplicate)
		}
		list, err := parseList(rest)
		if err != nil {
			return fmt.Errorf("line %d: agent %q: %w", no, agent, err)
		}
		prefs[agent] = list

		return nil
	})
	if err != nil {
		return nil, err
	}

	return prefs, nil
}

// ReadBlacklist parses a blacklist file. Repeated pairs are accepted.
func ReadBlacklist(r io.Reader) (core.Blacklist, error) {
	bl := make(core.Blacklist)
	err := eachLine(r, func(no int, line string) error {
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want 'proposer,receiver': %w", no, ErrSyntax)
		}
		p := core.AgentID(strings.TrimSpace(fields[0]))
		rc := core.AgentID(strings.TrimSpace(fields[1]))
		if p == "" || rc == "" {
			return fmt.Errorf("line %d: empty name: %w", no, ErrSyntax)
		}
		bl.Add(p, rc)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return bl, nil
}

// LoadPrefsFile reads a preference file from disk.
func LoadPrefsFile(path string) (core.Prefs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open prefs: %w", err)
	}
	defer f.Close()

	prefs, err := ReadPrefs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return prefs, nil
}

// LoadBlacklistFile reads a blacklist file; an empty path yields an empty
// blacklist.
func LoadBlacklistFile(path string) (core.Blacklist, error) {
	if path == "" {
		return core.Blacklist{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open blacklist: %w", err)
	}
	defer f.Close()

	bl, err := ReadBlacklist(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return bl, nil
}

// WritePrefs writes prefs in the format ReadPrefs accepts, agents sorted.
func WritePrefs(w io.Writer, prefs core.Prefs) error {
	bw := bufio.NewWriter(w)
	for _, id := range prefs.IDs() {
		entries := make([]string, len(prefs[id]))
		for i, e := range prefs[id] {
			entries[i] = string(e)
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\n", id, strings.Join(entries, ",")); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteBlacklist writes one "proposer,receiver" line per pair, sorted.
func WriteBlacklist(w io.Writer, bl core.Blacklist) error {
	bw := bufio.NewWriter(w)
	for _, pair := range bl.Pairs() {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", pair.Proposer, pair.Receiver); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func parseList(s string) (core.PrefList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.PrefList{}, nil
	}
	parts := strings.Split(s, ",")
	list := make(core.PrefList, 0, len(parts))
	seen := make(map[core.AgentID]struct{}, len(parts))
	for _, part := range parts {
		id := core.AgentID(strings.TrimSpace(part))
		if id == "" {
			return nil, fmt.Errorf("empty list entry: %w", ErrSyntax)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%q ranked twice: %w", id, ErrDuplicate)
		}
		seen[id] = struct{}{}
		list = append(list, id)
	}

	return list, nil
}

// eachLine calls fn with the 1-based number and trimmed text of every
// non-blank, non-comment line.
func eachLine(r io.Reader, fn func(no int, line string) error) error {
	sc := bufio.NewScanner(r)
	no := 0
	for sc.Scan() {
		no++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if err := fn(no, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("ingest: read: %w", err)
	}

	return nil
}
