package executor

import (
	"strings"

	"github.com/Cyclone1070/devrelay/internal/tool/helper/content"
)

// Execution is the bounded, uniform view of a finished command.
type Execution struct {
	ReturnCode int
	Tail       []string
	Truncated  bool
}

// Normalize keeps only the last maxLines lines of the captured output and
// passes the exit status through unchanged.
func Normalize(res *Result, maxLines int) Execution {
	if res == nil {
		return Execution{ReturnCode: -1}
	}
	tail := content.TailLines(res.Output, maxLines)
	return Execution{
		ReturnCode: res.ExitCode,
		Tail:       tail,
		Truncated:  res.Truncated || len(tail) < len(content.SplitLines(res.Output)),
	}
}

// Text joins the retained lines with a single newline.
func (e Execution) Text() string {
	return strings.Join(e.Tail, "\n")
}
