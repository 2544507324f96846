// Package app holds the command handlers: argument validation, activity
// resolution and the calls into the Redmine client, independent of cobra.
package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/config"
	"redmine-cli/internal/logger"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

// Global flag names, registered on the root command.
const (
	FlagFormat = "format"
	FlagURL    = "url"
	FlagAPIKey = "api-key"
	FlagDebug  = "debug"
	FlagDryRun = "dry-run"
)

// Runtime is the process environment a command runs in.
type Runtime struct {
	Env    config.Env
	Paths  *config.Paths // nil means the per-OS defaults
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	HTTPClient      *http.Client
	MaxElapsed      time.Duration
	InitialInterval time.Duration
}

// DefaultRuntime uses the real process environment.
func DefaultRuntime() *Runtime {
	return &Runtime{
		Env:    config.OSEnv{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    time.Now,
	}
}

type runtimeKey struct{}

// WithRuntime stores rt in ctx for the commands to pick up.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// RuntimeFrom returns the runtime stored in ctx, or the default one.
func RuntimeFrom(ctx context.Context) *Runtime {
	if ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok && rt != nil {
			return rt
		}
	}
	return DefaultRuntime()
}

func (rt *Runtime) paths() (config.Paths, error) {
	if rt.Paths != nil {
		return *rt.Paths, nil
	}
	p, err := config.DefaultPaths()
	if err != nil {
		return config.Paths{}, apperr.Config(err.Error())
	}
	return p, nil
}

func (rt *Runtime) now() time.Time {
	if rt.Now == nil {
		return time.Now()
	}
	return rt.Now()
}

// GlobalFlags are the root persistent flags.
type GlobalFlags struct {
	Format string
	URL    string
	APIKey string
	Debug  bool
	DryRun bool
}

// ReadGlobalFlags reads the inherited root flags from cmd.
func ReadGlobalFlags(cmd *cobra.Command) GlobalFlags {
	f := cmd.Flags()
	var g GlobalFlags
	g.Format, _ = f.GetString(FlagFormat)
	g.URL, _ = f.GetString(FlagURL)
	g.APIKey, _ = f.GetString(FlagAPIKey)
	g.Debug, _ = f.GetBool(FlagDebug)
	g.DryRun, _ = f.GetBool(FlagDryRun)
	return g
}

// Session is everything one command invocation needs.
type Session struct {
	Config config.Config
	Client *redmine.Client
	Paths  config.Paths
	Log    zerolog.Logger
	Format output.Format
	DryRun bool

	rt *Runtime
}

// OpenLocal prepares a session for commands that only touch local files.
func OpenLocal(cmd *cobra.Command) (*Session, error) {
	rt := RuntimeFrom(cmd.Context())
	flags := ReadGlobalFlags(cmd)

	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}
	paths, err := rt.paths()
	if err != nil {
		return nil, err
	}
	return &Session{
		Paths:  paths,
		Log:    logger.New(flags.Debug, rt.Stderr),
		Format: format,
		DryRun: flags.DryRun,
		rt:     rt,
	}, nil
}

// Open prepares a session with resolved credentials and an API client.
func Open(cmd *cobra.Command) (*Session, error) {
	s, err := OpenLocal(cmd)
	if err != nil {
		return nil, err
	}
	flags := ReadGlobalFlags(cmd)

	cfg, err := config.Load(s.Paths, flags.URL, flags.APIKey, s.rt.Env)
	if err != nil {
		return nil, err
	}
	s.Config = cfg
	s.Log.Debug().Str("url", cfg.URL).Str("source", cfg.SourceLabel()).Msg("configuration resolved")

	s.Client = redmine.NewClient(cfg, redmine.Options{
		DryRun:          flags.DryRun,
		HTTPClient:      s.rt.HTTPClient,
		Logger:          &s.Log,
		MaxElapsed:      s.rt.MaxElapsed,
		InitialInterval: s.rt.InitialInterval,
	})
	return s, nil
}

// Render writes a result to stdout in the session's format.
func (s *Session) Render(data any, meta output.Meta) error {
	if err := output.Render(s.rt.Stdout, s.Format, data, meta); err != nil {
		return apperr.IO("failed to write output", err)
	}
	return nil
}

func (s *Session) today() string {
	return s.rt.now().Format(dateLayout)
}
