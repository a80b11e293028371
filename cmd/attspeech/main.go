// Package main provides the AT&T Speech CLI tool.
//
// Usage:
//
//	attspeech [flags] <command> [args]
//
// Commands:
//
//	stt      - Transcribe an audio file
//	tts      - Synthesize speech from text
//	token    - Run the OAuth token exchange
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.att-speech/attspeech/
//	Use 'attspeech config' commands to manage contexts, or set
//	ATT_API_KEY and ATT_SECRET_KEY (a .env file is read when present).
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bryanrite/att-speech/cmd/attspeech/commands"
	"github.com/bryanrite/att-speech/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
