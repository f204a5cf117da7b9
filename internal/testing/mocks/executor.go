package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/Cyclone1070/devrelay/internal/tool/service/executor"
)

// Call records one invocation of MockCommandExecutor.
type Call struct {
	Command []string
	Dir     string
}

// Line returns the command joined with single spaces.
func (c Call) Line() string { return strings.Join(c.Command, " ") }

// Response is the scripted outcome for a command line.
type Response struct {
	Output   string
	ExitCode int
	Err      error
}

// MockCommandExecutor plays back scripted responses keyed by the command line
// (arguments joined by spaces). Prefix keys ending in "*" match any command
// starting with the text before it. Unscripted commands succeed with no output.
type MockCommandExecutor struct {
	mu        sync.Mutex
	responses map[string][]Response
	Calls     []Call
	Missing   map[string]bool // program names that resolve to ErrToolNotFound
}

// NewMockCommandExecutor creates an executor with no scripted responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		responses: make(map[string][]Response),
		Missing:   make(map[string]bool),
	}
}

// On queues a response for line. Multiple responses for the same line are
// returned in order; the last one repeats.
func (m *MockCommandExecutor) On(line string, resp Response) *MockCommandExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[line] = append(m.responses[line], resp)
	return m
}

// WithMissing marks program as not installed.
func (m *MockCommandExecutor) WithMissing(program string) *MockCommandExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Missing[program] = true
	return m
}

func (m *MockCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*executor.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := Call{Command: append([]string(nil), command...), Dir: dir}
	m.Calls = append(m.Calls, call)

	if len(command) == 0 {
		return nil, executor.ErrEmptyCommand
	}
	if m.Missing[command[0]] {
		return nil, &executor.ToolNotFoundError{Name: command[0]}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, ok := m.next(call.Line())
	if !ok {
		return &executor.Result{}, nil
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &executor.Result{Output: resp.Output, ExitCode: resp.ExitCode}, nil
}

func (m *MockCommandExecutor) Probe(ctx context.Context, command []string, dir string) bool {
	res, err := m.Run(ctx, command, dir, nil)
	return err == nil && res.ExitCode == 0
}

// Lines returns every recorded command line in call order.
func (m *MockCommandExecutor) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = c.Line()
	}
	return lines
}

func (m *MockCommandExecutor) next(line string) (Response, bool) {
	key := line
	queue, ok := m.responses[key]
	if !ok {
		for k, q := range m.responses {
			if strings.HasSuffix(k, "*") && strings.HasPrefix(line, strings.TrimSuffix(k, "*")) {
				key, queue, ok = k, q, true
				break
			}
		}
	}
	if !ok || len(queue) == 0 {
		return Response{}, false
	}
	resp := queue[0]
	if len(queue) > 1 {
		m.responses[key] = queue[1:]
	}
	return resp, true
}
