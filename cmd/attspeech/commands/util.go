package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/bryanrite/att-speech/pkg/att"
	"github.com/bryanrite/att-speech/pkg/cli"
)

// requestTimeout bounds one command, token exchange included.
const requestTimeout = 2 * time.Minute

// clientOptions maps a CLI context onto client options.
func clientOptions(ctx *cli.Context) []att.Option {
	opts := []att.Option{
		att.WithLogger(slog.Default()),
		att.WithStatusErrors(),
	}

	if ctx.BaseURL != "" {
		opts = append(opts, att.WithBaseURL(ctx.BaseURL))
	}
	if ctx.Timeout > 0 {
		opts = append(opts, att.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}
	if ctx.Insecure {
		opts = append(opts, att.WithInsecureSkipVerify(true))
	}

	return opts
}

// createClient creates a client for scope, which runs the token exchange.
func createClient(reqCtx context.Context, ctx *cli.Context, scope att.Scope) (*att.Client, error) {
	printVerbose("Using context: %s", ctx.Name)
	printVerbose("Scope: %s", scope)
	return att.NewClient(reqCtx, ctx.APIKey, ctx.SecretKey, scope, clientOptions(ctx)...)
}

// printElapsed reports how long a request took in verbose mode.
func printElapsed(what string, start time.Time) {
	printVerbose("%s took %s", what, formatElapsed(time.Since(start)))
}

func formatElapsed(d time.Duration) string {
	return cli.FormatDuration(int(d.Milliseconds()))
}

// withTimeout derives the per-command request context.
func withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}
