package action

import (
	"context"

	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool"
	"github.com/mitchellh/mapstructure"
)

// validator is implemented by request types that check and default their fields.
type validator interface {
	Validate(cfg *config.Config) error
}

// Runner executes an action with a typed, validated request.
type Runner[Req, Resp any] func(context.Context, *Req) (Resp, error)

// BaseAdapter turns a typed Runner into an Action:
// - args are decoded into Req by their json tag names (mapstructure)
// - Req is validated and defaulted against the config
// - Resp is returned as is for the transport to serialise
type BaseAdapter[Req, Resp any] struct {
	declaration tool.Declaration
	config      *config.Config
	run         Runner[Req, Resp]
}

// NewBaseAdapter creates a new base adapter.
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	params *tool.Schema,
	cfg *config.Config,
	run Runner[Req, Resp],
) *BaseAdapter[Req, Resp] {
	if cfg == nil {
		panic("cfg is required")
	}
	if run == nil {
		panic("run is required")
	}
	return &BaseAdapter[Req, Resp]{
		declaration: tool.Declaration{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		config: cfg,
		run:    run,
	}
}

func (b *BaseAdapter[Req, Resp]) Name() string                  { return b.declaration.Name }
func (b *BaseAdapter[Req, Resp]) Description() string           { return b.declaration.Description }
func (b *BaseAdapter[Req, Resp]) Declaration() tool.Declaration { return b.declaration }

// Execute implements Action.
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (any, error) {
	req, err := b.decode(args)
	if err != nil {
		return nil, &InvalidArgumentsError{Action: b.Name(), Cause: err}
	}

	if v, ok := any(req).(validator); ok {
		if err := v.Validate(b.config); err != nil {
			return nil, &InvalidArgumentsError{Action: b.Name(), Cause: err}
		}
	}

	resp, err := b.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (b *BaseAdapter[Req, Resp]) decode(args map[string]any) (*Req, error) {
	req := new(Req)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           req,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(args); err != nil {
		return nil, err
	}
	return req, nil
}
