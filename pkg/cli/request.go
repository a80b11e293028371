package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

type requestDecoder struct {
	name   string
	decode func(data []byte, v any) error
}

var (
	yamlRequest = requestDecoder{name: "yaml", decode: yaml.Unmarshal}
	jsonRequest = requestDecoder{name: "json", decode: json.Unmarshal}
)

// LoadRequest decodes a YAML or JSON request file into v. The path "-"
// reads stdin.
func LoadRequest(path string, v any) error {
	data, err := ReadInput(path)
	if err != nil {
		return err
	}
	return ParseRequest(data, path, v)
}

// ParseRequest decodes data into v. The extension of name picks the
// decoder; without a known extension YAML is tried, then JSON.
func ParseRequest(data []byte, name string, v any) error {
	var decoders []requestDecoder
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		decoders = []requestDecoder{jsonRequest}
	case ".yaml", ".yml":
		decoders = []requestDecoder{yamlRequest}
	default:
		decoders = []requestDecoder{yamlRequest, jsonRequest}
	}

	var errs error
	for _, d := range decoders {
		err := d.decode(data, v)
		if err == nil {
			return nil
		}
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", d.name, err))
	}
	return fmt.Errorf("failed to parse request %s: %w", name, errs)
}

// ReadInput reads a whole file, or stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
