package vcs

import (
	"strconv"
	"strings"

	"github.com/Cyclone1070/devrelay/internal/tool/helper/content"
)

// statusCodes are the characters git uses in either porcelain status column.
const statusCodes = " MTADRCU"

// ParsePorcelain classifies `git status --porcelain` (v1) output. Each line
// is "XY path": "??" is untracked, a non-blank X is staged, otherwise a
// non-blank Y is changed. A path both staged and modified ("MM") is reported
// as staged only. Rename lines keep git's "old -> new" text. Lines that are
// not status entries, such as warnings git writes to stderr, are skipped;
// Raw still holds the full output.
func ParsePorcelain(raw string) Snapshot {
	snap := Snapshot{
		Staged:    []string{},
		Changed:   []string{},
		Untracked: []string{},
		Raw:       raw,
	}

	for _, line := range content.SplitLines(raw) {
		if !isStatusLine(line) {
			continue
		}
		x, y := line[0], line[1]
		path := unquotePath(line[3:], x == 'R' || x == 'C' || y == 'R' || y == 'C')
		switch {
		case x == '?':
			snap.Untracked = append(snap.Untracked, path)
		case x == '!':
		case x != ' ':
			snap.Staged = append(snap.Staged, path)
		case y != ' ':
			snap.Changed = append(snap.Changed, path)
		}
	}
	return snap
}

func isStatusLine(line string) bool {
	if len(line) < 4 || line[2] != ' ' {
		return false
	}
	xy := line[:2]
	if xy == "??" || xy == "!!" {
		return true
	}
	return xy != "  " &&
		strings.IndexByte(statusCodes, xy[0]) >= 0 &&
		strings.IndexByte(statusCodes, xy[1]) >= 0
}

// unquotePath undoes git's C-style quoting of paths with spaces, quotes or
// non-ASCII bytes. For renames each side of "old -> new" is unquoted.
func unquotePath(path string, rename bool) string {
	if rename {
		if from, to, ok := cutRename(path); ok {
			return unquote(from) + " -> " + unquote(to)
		}
	}
	return unquote(path)
}

// cutRename splits at the " -> " separator outside any quoted side.
func cutRename(path string) (string, string, bool) {
	if strings.HasPrefix(path, `"`) {
		if end := closingQuote(path); end > 0 && strings.HasPrefix(path[end+1:], " -> ") {
			return path[:end+1], path[end+5:], true
		}
		return "", "", false
	}
	return strings.Cut(path, " -> ")
}

func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}
