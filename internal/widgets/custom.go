package widgets

import (
	"context"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

// CustomFunc renders a widget from its validated arguments, keyed by wire
// name with defaults applied. A nil data value echoes the arguments.
type CustomFunc func(ctx context.Context, args map[string]any) (narration string, data any, err error)

// Custom builds a constructor for a widget defined outside this package.
func Custom(deps Deps, w *widget.Widget, fields []schema.Field, fn CustomFunc) registry.Constructor {
	deps = deps.withDefaults()

	return registry.Constructor{
		Name: w.Component,
		New: func() (*registry.Entry, error) {
			model, err := schema.NewModel(w.Identifier, fields...)
			if err != nil {
				return nil, err
			}

			return define(deps, w, model, func(ctx context.Context, in map[string]any) (*output, error) {
				narration, data, err := fn(ctx, in)
				if err != nil {
					return nil, err
				}

				if data == nil {
					data = in
				}

				return &output{Narration: narration, Data: data}, nil
			}), nil
		},
	}
}
