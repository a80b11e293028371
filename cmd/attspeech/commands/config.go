package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bryanrite/att-speech/pkg/att"
	"github.com/bryanrite/att-speech/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

A context holds one AT&T application's key and secret plus optional
defaults. Configuration is stored in ~/.att-speech/attspeech/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  attspeech config add-context myapp --api-key KEY --secret-key SECRET
  attspeech config add-context sandbox --api-key KEY --secret-key SECRET \
    --base-url https://localhost:8443 --insecure`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		flags := cmd.Flags()

		apiKey, _ := flags.GetString("api-key")
		secretKey, _ := flags.GetString("secret-key")
		if apiKey == "" || secretKey == "" {
			return fmt.Errorf("--api-key and --secret-key are required")
		}

		baseURL, _ := flags.GetString("base-url")
		timeout, _ := flags.GetInt("timeout")
		insecure, _ := flags.GetBool("insecure")
		speechContext, _ := flags.GetString("speech-context")
		xArg, _ := flags.GetString("x-arg")

		ctx := &cli.Context{
			APIKey:        apiKey,
			SecretKey:     secretKey,
			BaseURL:       baseURL,
			Timeout:       timeout,
			Insecure:      insecure,
			SpeechContext: speechContext,
		}
		if xArg != "" {
			ctx.SetExtra("x_arg", xArg)
		}

		// Validate without contacting the service.
		if err := (att.Config{
			APIKey:    apiKey,
			SecretKey: secretKey,
			Scope:     att.ScopeSpeech,
			BaseURL:   lo.CoalesceOrEmpty(baseURL, att.DefaultBaseURL),
		}).Validate(); err != nil {
			return err
		}

		if err := getConfig().AddContext(name, ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().DeleteContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Context %q deleted", args[0])
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := getConfig().UseContext(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context %q", args[0])
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if cfg.CurrentContext == "" {
			cli.PrintInfo("No current context set")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		names := cfg.ListContexts()
		if len(names) == 0 {
			cli.PrintInfo("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tAPI_KEY\tBASE_URL\tSPEECH_CONTEXT")
		for _, name := range names {
			ctx := cfg.Contexts[name]
			current := lo.Ternary(name == cfg.CurrentContext, "*", "")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				current,
				name,
				cli.MaskAPIKey(ctx.APIKey),
				lo.CoalesceOrEmpty(ctx.BaseURL, "(default)"),
				lo.CoalesceOrEmpty(ctx.SpeechContext, att.SpeechContextGeneric),
			)
		}
		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Config file: %s\n", cfg.Path())
		fmt.Fprintf(out, "Current context: %s\n", cfg.CurrentContext)
		fmt.Fprintf(out, "Contexts: %d\n", len(cfg.Contexts))

		names := cfg.ListContexts()
		if len(names) > 0 {
			fmt.Fprintln(out, "\nContext details:")
		}
		for _, name := range names {
			ctx := cfg.Contexts[name]
			fmt.Fprintf(out, "\n  %s:\n", name)
			fmt.Fprintf(out, "    API Key: %s\n", cli.MaskAPIKey(ctx.APIKey))
			fmt.Fprintf(out, "    Secret Key: %s\n", cli.MaskAPIKey(ctx.SecretKey))
			if ctx.BaseURL != "" {
				fmt.Fprintf(out, "    Base URL: %s\n", ctx.BaseURL)
			}
			if ctx.Timeout > 0 {
				fmt.Fprintf(out, "    Timeout: %ds\n", ctx.Timeout)
			}
			if ctx.Insecure {
				fmt.Fprintln(out, "    TLS Verify: disabled")
			}
			if ctx.SpeechContext != "" {
				fmt.Fprintf(out, "    Speech Context: %s\n", ctx.SpeechContext)
			}
			if xArg := ctx.GetExtra("x_arg"); xArg != "" {
				fmt.Fprintf(out, "    X-Arg: %s\n", xArg)
			}
		}

		return nil
	},
}

func init() {
	// add-context flags
	configAddContextCmd.Flags().String("api-key", "", "Application key (required)")
	configAddContextCmd.Flags().String("secret-key", "", "Application secret (required)")
	configAddContextCmd.Flags().String("base-url", "", "API base URL (default "+att.DefaultBaseURL+")")
	configAddContextCmd.Flags().Int("timeout", 0, "Request timeout in seconds")
	configAddContextCmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	configAddContextCmd.Flags().String("speech-context", "", "Default X-SpeechContext for stt")
	configAddContextCmd.Flags().String("x-arg", "", "Default X-Arg header")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
