// Package content holds small pure helpers for handling captured text.
package content

// SplitLines splits content on \n and \r\n without returning a trailing
// empty line when the content ends with a line break.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch {
		case content[i] == '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n':
			lines = append(lines, content[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// TailLines returns the last n lines of content in their original order.
// Content with n or fewer lines is returned whole; n <= 0 disables the cap.
func TailLines(content string, n int) []string {
	lines := SplitLines(content)
	if n <= 0 || len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
