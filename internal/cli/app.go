// Package cli holds what every viur command needs at run time: the resolved
// configuration, the logger, the output renderer and a way to reach the
// backend. The root command builds one App per invocation and stores it in
// the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/config"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App is the per-invocation environment of a command
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Out      io.Writer
	Err      io.Writer
	Renderer Renderer
	FS       afero.Fs
	DryRun   bool
	Now      func() time.Time
}

// Renderer is the subset of ui.Renderer commands use
type Renderer interface {
	RenderResult(result interface{}) error
	RenderMessage(msg string) error
}

type appKey struct{}

// WithApp stores app in ctx
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromCommand returns the App the root command stored in cmd's context
func FromCommand(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	if ctx != nil {
		if app, ok := ctx.Value(appKey{}).(*App); ok {
			return app, nil
		}
	}
	return nil, errors.New(errors.ErrInternal, "command started without an application context")
}

// NewClient returns an unauthenticated client for host, using the
// configured timeout and retry policy
func (a *App) NewClient(host string) (*client.Client, error) {
	if host == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no backend host configured, use --connect or VIUR_SERVER_HOST")
	}
	return client.New(client.Options{
		Host:       host,
		Render:     a.Config.Server.Render,
		Timeout:    a.Config.Server.Timeout,
		Retries:    a.Config.Server.Retries,
		RetryDelay: a.Config.Server.RetryDelay,
		Logger:     logging.Component(a.Logger, "client"),
	})
}

// Credentials returns the configured login credentials
func (a *App) Credentials() client.Credentials {
	return client.Credentials{
		Username: a.Config.Auth.Username,
		Password: a.Config.Auth.Password,
		LoginKey: a.Config.Auth.LoginKey,
	}
}

// Connect logs into the configured backend. Callers must call the returned
// close function, which logs out.
func (a *App) Connect(ctx context.Context) (*client.Client, func(), error) {
	c, err := a.NewClient(a.Config.Server.Host)
	if err != nil {
		return nil, nil, err
	}

	creds := a.Credentials()
	if !creds.Valid() {
		return nil, nil, errors.New(errors.ErrInvalidInput, "no credentials configured, use --username/--password or --login-key")
	}
	if err := c.Login(ctx, creds); err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		// The command context may already be cancelled.
		timeout := a.Config.Server.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		logoutCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := c.Logout(logoutCtx); err != nil {
			a.Logger.Warn().Err(err).Msg("Logout failed")
		}
	}
	return c, closeFn, nil
}

// String returns the value of flag name when it was set on the command line,
// else fallback
func String(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

// Strings is String for string slice and string array flags
func Strings(cmd *cobra.Command, name string, fallback []string) []string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	if v, err := cmd.Flags().GetStringSlice(name); err == nil {
		return v
	}
	v, _ := cmd.Flags().GetStringArray(name)
	return v
}

// Bool is String for boolean flags
func Bool(cmd *cobra.Command, name string, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return fallback
}

// Int is String for integer flags
func Int(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}
