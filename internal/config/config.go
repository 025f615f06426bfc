package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/render"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "wecco.json"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultIndent is the default indent of pretty output.
	DefaultIndent = "  "

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "wecco"

	// DefaultDebounce is the default watch debounce interval.
	DefaultDebounce = "100ms"
)

// FileNames lists the configuration file names Load looks for, in order.
var FileNames = []string{ConfigFileName, "wecco.yaml", "wecco.yml"}

// Config represents the complete project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Debug enables verbose compiler diagnostics.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	// StripMarkers omits placeholder marker comments from rendered output.
	StripMarkers bool `json:"stripMarkers,omitempty" yaml:"stripMarkers,omitempty"`

	// Pretty indents rendered output.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`

	// Indent is the indent unit used when Pretty is set.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`

	// IncludeShadow serializes shadow roots as declarative templates.
	IncludeShadow bool `json:"includeShadow,omitempty" yaml:"includeShadow,omitempty"`

	// Metrics contains Prometheus collector configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Watch contains file watching configuration.
	Watch WatchConfig `json:"watch,omitempty" yaml:"watch,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains Prometheus collector settings.
type MetricsConfig struct {
	// Enabled registers the engine collectors.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// WatchConfig contains file watching settings.
type WatchConfig struct {
	// Debounce is the quiet period before a change triggers a re-render
	// (e.g., "100ms").
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Indent:   DefaultIndent,
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// Load reads configuration from the specified directory. It uses the
// first of FileNames that exists.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("W010").
		WithDetail("No wecco.json or wecco.yaml found in " + dir).
		WithSuggestion("Run 'wecco init' to create a configuration file")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("W010").
				WithDetail("No configuration found at " + path).
				WithSuggestion("Run 'wecco init' to create a configuration file")
		}
		return nil, errors.New("W010").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("W010").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is well formed")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in YAML when the
// path has a YAML extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("W010").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W010").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Indent == "" {
		c.Indent = DefaultIndent
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return errors.New("W010").
			WithDetailf("logLevel %q is not one of debug, info, warn, error", c.LogLevel)
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return errors.New("W010").
			WithDetailf("indent %q may only contain spaces and tabs", c.Indent)
	}
	if !validMetricName(c.Metrics.Namespace) {
		return errors.New("W010").
			WithDetailf("metrics namespace %q is not a valid metric name", c.Metrics.Namespace)
	}
	if d, err := c.DebounceDuration(); err != nil || d < 0 {
		return errors.New("W010").
			WithDetailf("watch debounce %q is not a non-negative duration", c.Watch.Debounce)
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// DebounceDuration returns the parsed watch debounce interval.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Watch.Debounce)
}

// RendererConfig returns the serializer settings described by c.
func (c *Config) RendererConfig() render.RendererConfig {
	return render.RendererConfig{
		Pretty:        c.Pretty,
		Indent:        c.Indent,
		StripMarkers:  c.StripMarkers,
		IncludeShadow: c.IncludeShadow,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("W010").
				WithDetail("No wecco.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'wecco init' to create a configuration file")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its closest ancestor that has one. It returns the defaults
// when no configuration exists.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == ':' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
