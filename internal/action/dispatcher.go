package action

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Cyclone1070/devrelay/internal/tool"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher routes named actions to their handlers, one call at a time.
type Dispatcher struct {
	mu      sync.Mutex // held for the whole of each dispatch
	actions map[string]Action
	aliases map[string]string
	order   []Action
	logger  *zap.Logger
}

// NewDispatcher creates an empty dispatcher. A nil logger discards logs.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		actions: make(map[string]Action),
		aliases: make(map[string]string),
		logger:  logger,
	}
}

// Register adds a under its name and any aliases.
func (d *Dispatcher) Register(a Action, aliases ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, name := range append([]string{a.Name()}, aliases...) {
		if d.taken(name) {
			return &DuplicateActionError{Name: name}
		}
	}
	d.actions[a.Name()] = a
	for _, alias := range aliases {
		d.aliases[alias] = a.Name()
	}
	d.order = append(d.order, a)
	return nil
}

func (d *Dispatcher) taken(name string) bool {
	_, isAction := d.actions[name]
	_, isAlias := d.aliases[name]
	return isAction || isAlias
}

// Actions returns the registered actions in registration order.
func (d *Dispatcher) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Action(nil), d.order...)
}

// Aliases returns the alias names that resolve to the named action, sorted.
func (d *Dispatcher) Aliases(name string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for alias, target := range d.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Lookup resolves a name or alias.
func (d *Dispatcher) Lookup(name string) (Action, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookup(name)
}

func (d *Dispatcher) lookup(name string) (Action, bool) {
	if canonical, ok := d.aliases[name]; ok {
		name = canonical
	}
	a, ok := d.actions[name]
	return a, ok
}

// Dispatch runs the named action with args. A pre-check failure is returned
// as its structured payload with a nil error; unknown names, bad arguments
// and unexpected failures are returned as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.lookup(name)
	if !ok {
		d.logger.Warn("unrecognized action", zap.String("action", name))
		return nil, &UnrecognizedActionError{Name: name}
	}

	log := d.logger.With(
		zap.String("request_id", uuid.New().String()),
		zap.String("action", a.Name()),
	)
	start := time.Now()
	log.Debug("dispatching action", zap.Int("args", len(args)))

	result, err := a.Execute(ctx, args)
	elapsed := zap.Duration("duration", time.Since(start))

	var payloadErr tool.PayloadError
	switch {
	case err == nil:
		log.Info("action completed", elapsed)
		return result, nil
	case errors.As(err, &payloadErr):
		log.Info("action pre-check failed", elapsed, zap.String("reason", payloadErr.Error()))
		return payloadErr.Payload(), nil
	default:
		log.Error("action failed", elapsed, zap.Error(err))
		return nil, err
	}
}
