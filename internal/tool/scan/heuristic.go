package scan

import (
	"regexp"
	"strings"
)

// The scan is a best-effort textual heuristic, not a Java parser. Comments,
// strings and nested types are not understood. Identifiers start with an
// ASCII letter or underscore and may continue with any Unicode letter or
// digit, so names like "größe" are found.
var (
	classPattern  = regexp.MustCompile(`\bclass\s+([A-Za-z_][\p{L}\p{N}_]*)`)
	methodPattern = regexp.MustCompile(`(public|protected|private|\s) +[A-Za-z_<>\[\]]+\s+([a-zA-Z_][\p{L}\p{N}_]*)\s*\(`)
)

// reservedNames are control-flow keywords the method pattern picks up from
// statements such as "} else if (".
var reservedNames = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
}

// ScanJava reports every method-like signature in text. All entries from one
// file share the first declared class name, or nil when there is none.
func ScanJava(file, text string) []Entry {
	text = strings.ToValidUTF8(text, "")

	var class *string
	if m := classPattern.FindStringSubmatch(text); m != nil {
		name := m[1]
		class = &name
	}

	var entries []Entry
	for _, m := range methodPattern.FindAllStringSubmatch(text, -1) {
		method := m[2]
		if reservedNames[method] {
			continue
		}
		entries = append(entries, Entry{File: file, Class: class, Method: method})
	}
	return entries
}
