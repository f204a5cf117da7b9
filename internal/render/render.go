// Package render formats action results for a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	OKStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	DimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	NameStyle  = lipgloss.NewStyle().Bold(true)
)

// MarkdownRenderer renders markdown to terminal text.
type MarkdownRenderer interface {
	Render(in string) (string, error)
}

// NewMarkdownRenderer creates a glamour renderer that picks a light or dark
// style from the terminal. width <= 0 disables wrapping.
func NewMarkdownRenderer(width int) (MarkdownRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r, nil
}

// Status summarises a result in one styled line: an {error} payload or a
// non-zero returncode is a failure, anything else is ok.
func Status(result any) string {
	m, ok := asMap(result)
	if !ok {
		return OKStyle.Render("✔ ok")
	}
	if msg, ok := m["error"].(string); ok {
		return ErrorStyle.Render("✘ " + msg)
	}
	if code, ok := m["returncode"].(float64); ok && code != 0 {
		return ErrorStyle.Render(fmt.Sprintf("✘ exit status %d", int(code)))
	}
	return OKStyle.Render("✔ ok")
}

// Result renders a status line followed by the result as a JSON code block.
// When the markdown renderer fails the plain markdown is returned instead.
func Result(name string, result any, renderer MarkdownRenderer) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n```json\n%s\n```\n", name, data)

	body := md.String()
	if renderer != nil {
		if rendered, err := renderer.Render(body); err == nil {
			body = rendered
		}
	}
	return Status(result) + "\n" + body, nil
}

// ActionLine formats one entry of the action listing.
func ActionLine(name string, aliases []string, description string) string {
	line := NameStyle.Render(name)
	if len(aliases) > 0 {
		line += " " + DimStyle.Render("("+strings.Join(aliases, ", ")+")")
	}
	return line + "\n    " + description
}

// asMap normalises a result to a generic map through its JSON form, so typed
// responses and payload maps are inspected the same way.
func asMap(result any) (map[string]any, bool) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return m, true
}
