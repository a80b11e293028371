package cli

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ContextFromEnv.
const (
	EnvAPIKey    = "ATT_API_KEY"
	EnvSecretKey = "ATT_SECRET_KEY"
	EnvBaseURL   = "ATT_BASE_URL"
	EnvInsecure  = "ATT_INSECURE"
)

// LoadDotEnv loads variables from the given files (".env" when none) into
// the process environment. Variables already set are kept. Missing files
// are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ContextFromEnv builds a context named "env" from ATT_* variables. It
// returns false when ATT_API_KEY is not set.
func ContextFromEnv() (*Context, bool) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, false
	}
	insecure, _ := strconv.ParseBool(os.Getenv(EnvInsecure))
	return &Context{
		Name:      "env",
		APIKey:    apiKey,
		SecretKey: os.Getenv(EnvSecretKey),
		BaseURL:   os.Getenv(EnvBaseURL),
		Insecure:  insecure,
	}, true
}
