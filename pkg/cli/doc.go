// Package cli holds the pieces of the attspeech command that are not
// commands themselves.
//
// Credentials live in named contexts in ~/.att-speech/<app>/config.yaml,
// managed kubectl style. When no context is selected, ContextFromEnv reads
// ATT_API_KEY, ATT_SECRET_KEY and ATT_BASE_URL (LoadDotEnv fills them from a
// .env file first).
//
// Results are written with Output as YAML, JSON, or raw bytes. YAML output of
// a *jsontree.Object keeps the key order the service sent.
//
//	cfg, err := cli.LoadConfig("attspeech")
//	if err != nil {
//	    return err
//	}
//	ctx, err := cfg.ResolveContext("")
//	...
//	err = cli.Output(result, cli.OutputOptions{Format: cli.FormatJSON})
package cli
