package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bryanrite/att-speech/pkg/att"
	"github.com/bryanrite/att-speech/pkg/cli"
	"github.com/bryanrite/att-speech/pkg/jsontree"
)

var (
	ttsText        string
	ttsContentType string
	ttsAccept      string
	ttsXArg        string
)

var ttsCmd = &cobra.Command{
	Use:   "tts [text...]",
	Short: "Synthesize speech from text",
	Long: `Synthesize speech with the textToSpeech API and save the audio.

Text comes from --text, the positional arguments, or a request file (-f).
Flags override fields of the request file.

Example request file (tts.yaml):
  text: Hello, this is a test message.
  content_type: text/plain
  accept: audio/amr-wb
  x_arg: VoiceName=crystal
  headers:
    X-Custom: value

Examples:
  attspeech -c myapp tts "Hello world" -o hello.wav
  attspeech -c myapp tts -f tts.yaml -o hello.amr
  attspeech tts --text "<speak>Hi</speak>" --content-type application/ssml+xml -o hi.wav`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := global.output
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		ctx, err := getContext()
		if err != nil {
			return err
		}

		req, err := buildTTSRequest(args, ctx)
		if err != nil {
			return err
		}

		printVerbose("Text length: %d characters", len(req.Text))

		reqCtx, cancel := withTimeout(cmd.Context())
		defer cancel()

		client, err := createClient(reqCtx, ctx, att.ScopeTTS)
		if err != nil {
			return fmt.Errorf("token exchange failed: %w", err)
		}

		start := time.Now()
		audio, err := client.TextToSpeech(reqCtx, req)
		if err != nil {
			return fmt.Errorf("text to speech failed: %w", err)
		}
		printElapsed("Synthesis", start)

		if err := cli.OutputBytes(audio, outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}
		printVerbose("Audio saved to: %s", outputPath)

		result := jsontree.NewObject()
		result.Set("output_file", outputPath)
		result.Set("audio_size", cli.FormatBytesInt(len(audio)))
		result.Set("accept", lo.CoalesceOrEmpty(req.Accept, "audio/x-wav"))
		result.Set("content_type", lo.CoalesceOrEmpty(req.ContentType, att.ContentTypeText))

		return outputResult(result, "")
	},
}

// buildTTSRequest starts from the request file, then applies positional
// text and flags. The context's x_arg is used when nothing sets XArg.
func buildTTSRequest(args []string, ctx *cli.Context) (*att.TextToSpeechRequest, error) {
	req := &att.TextToSpeechRequest{}
	if path := global.input; path != "" {
		if err := cli.LoadRequest(path, req); err != nil {
			return nil, err
		}
	}

	if len(args) > 0 {
		req.Text = strings.Join(args, " ")
	}
	req.Text = lo.CoalesceOrEmpty(ttsText, req.Text)
	req.ContentType = lo.CoalesceOrEmpty(ttsContentType, req.ContentType)
	req.Accept = lo.CoalesceOrEmpty(ttsAccept, req.Accept)
	req.XArg = lo.CoalesceOrEmpty(ttsXArg, req.XArg, ctx.GetExtra("x_arg"))

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required, use --text, arguments, or -f")
	}
	return req, nil
}

func init() {
	ttsCmd.Flags().StringVar(&ttsText, "text", "", "Text to synthesize")
	ttsCmd.Flags().StringVar(&ttsContentType, "content-type", "", "Text content type (text/plain or application/ssml+xml)")
	ttsCmd.Flags().StringVar(&ttsAccept, "accept", "", "Audio format (default audio/x-wav)")
	ttsCmd.Flags().StringVar(&ttsXArg, "x-arg", "", "X-Arg header, e.g. VoiceName=crystal")
}
