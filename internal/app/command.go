package app

import (
	"context"

	"github.com/spf13/cobra"

	"redmine-cli/internal/output"
)

// Paged is implemented by results that carry pagination.
type Paged interface {
	Meta() output.Meta
}

// RunRemote opens a session with an API client, runs fn and renders what it
// returns. It is the body of every command that talks to the server.
func RunRemote(cmd *cobra.Command, fn func(ctx context.Context, s *Session) (any, error)) error {
	s, err := Open(cmd)
	if err != nil {
		return err
	}
	return run(cmd.Context(), s, fn)
}

// RunLocal is RunRemote for commands that only touch local files.
func RunLocal(cmd *cobra.Command, fn func(ctx context.Context, s *Session) (any, error)) error {
	s, err := OpenLocal(cmd)
	if err != nil {
		return err
	}
	return run(cmd.Context(), s, fn)
}

func run(ctx context.Context, s *Session, fn func(ctx context.Context, s *Session) (any, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := fn(ctx, s)
	if err != nil {
		return err
	}
	var meta output.Meta
	if p, ok := res.(Paged); ok {
		meta = p.Meta()
	}
	return s.Render(res, meta)
}

// DefaultLimit is the page size when --limit is not given.
const DefaultLimit = 25

// AddPageFlags registers --limit and --offset.
func AddPageFlags(cmd *cobra.Command, limit, offset *int) {
	cmd.Flags().IntVar(limit, "limit", DefaultLimit, "Maximum number of results (1-100)")
	cmd.Flags().IntVar(offset, "offset", 0, "Number of results to skip")
}

// Changed returns a pointer to the flag's value when it was set on the
// command line, and nil otherwise.
func Changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
