package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"

	"github.com/bryanrite/att-speech/pkg/jsontree"
)

// OutputFormat selects how Output encodes a result.
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
	FormatRaw  OutputFormat = "raw"
)

// OutputOptions configures Output. Writer takes precedence over File; with
// neither, results go to stdout.
type OutputOptions struct {
	Format OutputFormat
	File   string
	Writer io.Writer

	// Indent for JSON, two spaces when empty.
	Indent string
}

type encodeFunc func(w io.Writer, result any, opts OutputOptions) error

var encoders = map[OutputFormat]encodeFunc{
	"":         encodeYAML,
	FormatYAML: encodeYAML,
	FormatJSON: encodeJSON,
	FormatRaw:  encodeRaw,
}

// Output encodes result to the destination in opts.
func Output(result any, opts OutputOptions) (err error) {
	encode, ok := encoders[opts.Format]
	if !ok {
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	w := opts.Writer
	if w == nil && opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to write output file: %w", cerr)
			}
		}()
		w = f
	}
	if w == nil {
		w = os.Stdout
	}

	return encode(w, result, opts)
}

func encodeJSON(w io.Writer, result any, opts OutputOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", lo.CoalesceOrEmpty(opts.Indent, "  "))
	return enc.Encode(result)
}

func encodeYAML(w io.Writer, result any, _ OutputOptions) error {
	data, err := yaml.Marshal(orderedYAML(result))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// encodeRaw writes bytes and strings untouched and falls back to YAML.
func encodeRaw(w io.Writer, result any, opts OutputOptions) error {
	switch v := result.(type) {
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := io.WriteString(w, v)
		return err
	}
	return encodeYAML(w, result, opts)
}

// orderedYAML turns jsontree objects into yaml.MapSlice so YAML keeps the
// key order of the service response.
func orderedYAML(v any) any {
	switch node := v.(type) {
	case *jsontree.Object:
		ms := make(yaml.MapSlice, 0, node.Len())
		for key, val := range node.All() {
			ms = append(ms, yaml.MapItem{Key: key, Value: orderedYAML(val)})
		}
		return ms
	case []any:
		return lo.Map(node, func(item any, _ int) any { return orderedYAML(item) })
	case json.Number:
		return jsontree.Plain(node)
	}
	return v
}

// OutputBytes writes binary data such as synthesized audio to path.
func OutputBytes(data []byte, path string) error {
	if path == "" {
		return fmt.Errorf("output file path is required for binary data")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
