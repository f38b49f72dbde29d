package mcpapps

import (
	"context"
	"fmt"
)

// Serve builds a Server from opts and runs its listeners until ctx is
// cancelled.
//
// Example usage:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	err := mcpapps.Serve(ctx,
//	    mcpapps.WithLogger(log),
//	    mcpapps.WithAssetsDir("web/dist"),
//	)
func Serve(ctx context.Context, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s, err := New(opts...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	return s.ListenAndServe(ctx)
}

// WithServer builds a Server and passes it to fn without starting any
// listener. Use it to call tools or read widget resources in process.
//
// Example usage:
//
//	err := mcpapps.WithServer(ctx, func(s *mcpapps.Server) error {
//	    result := s.CallTool(ctx, "show_card", map[string]any{"title": "Hi"})
//	    fmt.Println(mcpapps.ResultText(result))
//	    return nil
//	},
//	    mcpapps.WithAssetsDir("web/dist"),
//	)
func WithServer(ctx context.Context, fn func(*Server) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s, err := New(opts...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	return fn(s)
}
