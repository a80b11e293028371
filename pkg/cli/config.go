package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the directory under $HOME holding per-app configs.
	DefaultBaseDir = ".att-speech"
	// DefaultConfigFile is the config file name inside the app directory.
	DefaultConfigFile = "config.yaml"
)

// ErrContextNotFound is returned for a context name that is not configured.
var ErrContextNotFound = errors.New("context not found")

// Config is the on-disk CLI configuration: named credential contexts and
// the one currently selected.
type Config struct {
	AppName        string              `yaml:"-"`
	CurrentContext string              `yaml:"current_context,omitempty"`
	Contexts       map[string]*Context `yaml:"contexts,omitempty"`

	path string
}

// Context is one AT&T application's credentials plus CLI defaults.
type Context struct {
	Name      string `yaml:"name"`
	APIKey    string `yaml:"api_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`

	// BaseURL overrides https://api.att.com.
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout is the HTTP timeout in seconds, 0 for none.
	Timeout int `yaml:"timeout,omitempty"`

	// Insecure turns off TLS certificate verification.
	Insecure bool `yaml:"insecure,omitempty"`

	// SpeechContext is the X-SpeechContext stt uses when none is given.
	SpeechContext string `yaml:"speech_context,omitempty"`

	// Extra holds free-form defaults such as "x_arg".
	Extra map[string]string `yaml:"extra,omitempty"`
}

// DefaultConfigPath returns ~/.att-speech/<appName>/config.yaml.
func DefaultConfigPath(appName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, appName, DefaultConfigFile), nil
}

// LoadConfig loads the config for appName from its default location.
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads the config at path, or at the default location
// when path is empty. A missing file is created empty.
func LoadConfigWithPath(appName, path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath(appName)
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{AppName: appName, path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.Contexts = make(map[string]*Context)
		return cfg, cfg.Save()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	// The map key is the name; a hand-edited name field does not win.
	for name, ctx := range cfg.Contexts {
		if ctx == nil {
			delete(cfg.Contexts, name)
			continue
		}
		ctx.Name = name
	}
	return cfg, nil
}

// Save writes the config with mode 0600, replacing the file atomically.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(c.Dir(), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.Dir(), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string { return c.path }

// Dir returns the directory holding the config file.
func (c *Config) Dir() string { return filepath.Dir(c.path) }

// AddContext stores ctx under name, replacing any context of that name.
func (c *Config) AddContext(name string, ctx *Context) error {
	if name == "" {
		return errors.New("context name is required")
	}
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context, clearing the selection if it was current.
func (c *Config) DeleteContext(name string) error {
	if _, err := c.GetContext(name); err != nil {
		return err
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext selects the current context.
func (c *Config) UseContext(name string) error {
	if _, err := c.GetContext(name); err != nil {
		return err
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns the named context or an error wrapping
// ErrContextNotFound.
func (c *Config) GetContext(name string) (*Context, error) {
	if ctx, ok := c.Contexts[name]; ok {
		return ctx, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrContextNotFound, name)
}

// GetCurrentContext returns the selected context.
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, errors.New("no current context set")
	}
	return c.GetContext(c.CurrentContext)
}

// ResolveContext returns the named context, or the current one for "".
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name != "" {
		return c.GetContext(name)
	}
	return c.GetCurrentContext()
}

// ListContexts returns the context names in sorted order.
func (c *Config) ListContexts() []string {
	return slices.Sorted(maps.Keys(c.Contexts))
}

// GetExtra returns a free-form default, "" when unset.
func (ctx *Context) GetExtra(key string) string {
	return ctx.Extra[key]
}

// SetExtra stores a free-form default.
func (ctx *Context) SetExtra(key, value string) {
	if ctx.Extra == nil {
		ctx.Extra = make(map[string]string)
	}
	ctx.Extra[key] = value
}

// MaskAPIKey hides all but the first and last four characters of a key.
// Keys of eight characters or fewer are hidden entirely.
func MaskAPIKey(key string) string {
	const keep = 4
	if len(key) <= 2*keep {
		return strings.Repeat("*", len(key))
	}
	return key[:keep] + strings.Repeat("*", len(key)-2*keep) + key[len(key)-keep:]
}
