package commands

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bryanrite/att-speech/pkg/att"
	"github.com/bryanrite/att-speech/pkg/cli"
	"github.com/bryanrite/att-speech/pkg/jsontree"
)

var (
	sttContentType   string
	sttSpeechContext string
	sttXArg          string
	sttQuery         string
)

var sttCmd = &cobra.Command{
	Use:   "stt <audio-file>",
	Short: "Transcribe an audio file",
	Long: `Transcribe an audio file with the speechToText API.

The content type is taken from the file extension (.wav, .amr, .awb, .spx)
unless --content-type is given. Use "-" to read audio from stdin.

The result is printed with snake_case keys. Note that only the first n_best
entry is normalized; later entries keep the service's key names.

Examples:
  attspeech -c myapp stt hello.wav
  attspeech -c myapp stt message.amr --speech-context Voicemail --json
  attspeech stt hello.wav --query '.recognition.n_best[0].hypothesis'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		ctx, err := getContext()
		if err != nil {
			return err
		}

		audio, err := cli.ReadInput(path)
		if err != nil {
			return err
		}

		req := &att.SpeechToTextRequest{
			Audio:         audio,
			ContentType:   lo.CoalesceOrEmpty(sttContentType, att.ContentTypeForFile(path)),
			SpeechContext: lo.CoalesceOrEmpty(sttSpeechContext, ctx.SpeechContext),
			XArg:          lo.CoalesceOrEmpty(sttXArg, ctx.GetExtra("x_arg")),
			OnComplete: func(result *jsontree.Object) {
				rec, err := att.ParseRecognition(result)
				if err != nil || rec.Best == nil {
					return
				}
				printVerbose("Status: %s", rec.Status)
				printVerbose("Best hypothesis: %q (confidence %.3f)", rec.Best.Hypothesis, rec.Best.Confidence)
			},
		}

		printVerbose("Audio: %s (%s)", path, cli.FormatBytesInt(len(audio)))
		printVerbose("Content type: %s", lo.CoalesceOrEmpty(req.ContentType, att.ContentTypeWAV))

		reqCtx, cancel := withTimeout(cmd.Context())
		defer cancel()

		client, err := createClient(reqCtx, ctx, att.ScopeSpeech)
		if err != nil {
			return fmt.Errorf("token exchange failed: %w", err)
		}

		start := time.Now()
		result, err := client.SpeechToText(reqCtx, req)
		if err != nil {
			return fmt.Errorf("speech to text failed: %w", err)
		}
		printElapsed("Transcription", start)

		if sttQuery == "" {
			return outputResult(result, global.output)
		}

		values, err := cli.Query(reqCtx, sttQuery, result)
		if err != nil {
			return err
		}
		if len(values) == 1 {
			return outputResult(values[0], global.output)
		}
		return outputResult(values, global.output)
	},
}

func init() {
	sttCmd.Flags().StringVar(&sttContentType, "content-type", "", "Audio content type (default from file extension, else audio/wav)")
	sttCmd.Flags().StringVar(&sttSpeechContext, "speech-context", "", "X-SpeechContext (default Generic)")
	sttCmd.Flags().StringVar(&sttXArg, "x-arg", "", "X-Arg header")
	sttCmd.Flags().StringVarP(&sttQuery, "query", "q", "", "jq expression applied to the result")
}
