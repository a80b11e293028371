package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bryanrite/att-speech/pkg/cli"
)

const appName = "attspeech"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	context    string
	output     string
	input      string
	json       bool
	verbose    bool
}

var (
	global       globalOptions
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "attspeech",
	Short: "AT&T Speech API CLI tool",
	Long: `attspeech - A command line interface for the AT&T Speech API.

Transcribe audio (stt), synthesize speech (tts), and check credentials
(token). Credentials come from a named context stored in
~/.att-speech/attspeech/config.yaml, or from ATT_API_KEY, ATT_SECRET_KEY and
ATT_BASE_URL (a .env file in the working directory is read first).

Examples:
  # Set up a new context
  attspeech config add-context myapp --api-key KEY --secret-key SECRET
  attspeech config use-context myapp

  # Transcribe a recording
  attspeech stt hello.wav

  # Synthesize speech
  attspeech tts "Hello world" -o hello.wav

  # Pull out the best hypothesis
  attspeech stt hello.wav --query '.recognition.n_best[0].hypothesis'
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Commands inherit ctx, so cancelling it aborts the
// request in flight.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&global.configFile, "config", "", "config file (default is ~/.att-speech/attspeech/config.yaml)")
	flags.StringVarP(&global.context, "context", "c", "", "context name to use")
	flags.StringVarP(&global.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&global.input, "file", "f", "", "input request file (YAML or JSON, - for stdin)")
	flags.BoolVar(&global.json, "json", false, "output as JSON (for piping)")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "verbose output and debug logging")

	rootCmd.AddCommand(configCmd, tokenCmd, sttCmd, ttsCmd)
}

func initConfig() {
	if err := cli.LoadDotEnv(); err != nil {
		cli.PrintWarning("ignoring .env: %v", err)
	}
	if global.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := cli.LoadConfigWithPath(appName, global.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
	globalConfig = cfg
}

func getConfig() *cli.Config {
	return globalConfig
}

// getContext picks the -c context, else the current one, else the ATT_*
// environment.
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(global.context)
	switch {
	case err == nil:
		return ctx, nil
	case global.context != "":
		return nil, err
	}
	if envCtx, ok := cli.ContextFromEnv(); ok {
		return envCtx, nil
	}
	return nil, fmt.Errorf("no context specified. Use -c, 'attspeech config use-context', or set %s and %s",
		cli.EnvAPIKey, cli.EnvSecretKey)
}

// outputResult prints result as YAML, or JSON with --json, to path or stdout.
func outputResult(result any, path string) error {
	return cli.Output(result, cli.OutputOptions{
		Format: lo.Ternary(global.json, cli.FormatJSON, cli.FormatYAML),
		File:   path,
	})
}

func printVerbose(format string, args ...any) {
	cli.PrintVerbose(global.verbose, format, args...)
}
