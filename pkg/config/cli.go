package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/contractd/pkg/properties"
)

// LocalConfigFileName is the CLI config file looked up in the working directory.
const LocalConfigFileName = ".contractdrc.yaml"

// Property keys consulted by ApplyProperties.
const (
	PropertyContracts = "contracts"
	PropertySeed      = "seed"
	PropertyLogLevel  = "log.level"
	PropertyLogFormat = "log.format"
	PropertyJSON      = "output.json"
)

// ConfigSource identifies where a config value originated.
const (
	SourceDefault  = "default"
	SourceLocal    = "local"
	SourceProperty = "property"
	SourceFlag     = "flag"
)

// CLIConfig is the configuration of the contractd CLI.
// Values are layered, highest priority first:
//  1. Command-line flags
//  2. Properties (-D flags, --env-file, CONTRACTD_PROPERTIES_* and plain env)
//  3. Local config file (.contractdrc.yaml in the working directory)
//  4. Defaults
type CLIConfig struct {
	// Contracts lists the files, directories or globs loaded when a command
	// is given no arguments.
	Contracts []string `yaml:"contracts,omitempty" json:"contracts,omitempty"`

	// Seed makes drawn example values repeatable. Zero draws randomly.
	Seed uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`
	JSON      bool   `yaml:"json,omitempty" json:"json,omitempty"`

	// Properties are options consulted before system properties and the
	// environment when resolving a property.
	Properties map[string]string `yaml:"properties,omitempty" json:"properties,omitempty"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"sources,omitempty"`
}

// NewDefault returns the default CLI configuration.
func NewDefault() *CLIConfig {
	return &CLIConfig{
		Contracts:  []string{"contracts"},
		LogLevel:   "warn",
		LogFormat:  "text",
		Properties: map[string]string{},
		Sources: map[string]string{
			"contracts": SourceDefault,
			"seed":      SourceDefault,
			"logLevel":  SourceDefault,
			"logFormat": SourceDefault,
			"json":      SourceDefault,
		},
	}
}

// ConfigError is a CLI config file that could not be read.
type ConfigError struct {
	Path    string
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	}
	return e.Path + ": " + e.Message
}

// LoadCLIConfig returns the defaults overridden by dir's local config
// file, if present.
func LoadCLIConfig(dir string) (*CLIConfig, error) {
	cfg := NewDefault()
	path := filepath.Join(dir, LocalConfigFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	var local CLIConfig
	if err := yaml.Unmarshal(data, &local); err != nil {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			return nil, &ConfigError{Path: path, Message: strings.Join(te.Errors, "; ")}
		}
		return nil, &ConfigError{Path: path, Line: yamlErrorLine(err), Message: err.Error()}
	}
	mergeConfig(cfg, &local, SourceLocal)
	return cfg, nil
}

func mergeConfig(dst, src *CLIConfig, source string) {
	if len(src.Contracts) > 0 {
		dst.Contracts = src.Contracts
		dst.Sources["contracts"] = source
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
		dst.Sources["seed"] = source
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
		dst.Sources["logLevel"] = source
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
		dst.Sources["logFormat"] = source
	}
	if src.JSON {
		dst.JSON = true
		dst.Sources["json"] = source
	}
	for k, v := range src.Properties {
		dst.Properties[k] = v
	}
}

// LoadEnvFile reads a dotenv file into the config's properties map, where
// it is consulted before system properties and the environment. Keys are
// kept as written, so LOG_LEVEL=debug and log.level=debug both work.
func (c *CLIConfig) LoadEnvFile(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return &ConfigError{Path: path, Message: err.Error()}
	}
	for k, v := range values {
		c.Properties[k] = v
		if key := propertyKey(k); key != k {
			c.Properties[key] = v
		}
	}
	return nil
}

// propertyKey maps an environment-style name (LOG_LEVEL) to a property key
// (log.level). Names that are not upper-case are returned as is.
func propertyKey(name string) string {
	if name != strings.ToUpper(name) {
		return name
	}
	name = strings.TrimPrefix(name, properties.EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

// ApplyProperties overrides config values with resolved properties.
func (c *CLIConfig) ApplyProperties() error {
	if v := properties.Get(c.Properties, PropertyContracts); v != "" {
		c.Contracts = splitList(v)
		c.Sources["contracts"] = SourceProperty
	}
	if v := properties.Get(c.Properties, PropertySeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("property %s: %w", PropertySeed, err)
		}
		c.Seed = seed
		c.Sources["seed"] = SourceProperty
	}
	if v := properties.Get(c.Properties, PropertyLogLevel); v != "" {
		c.LogLevel = v
		c.Sources["logLevel"] = SourceProperty
	}
	if v := properties.Get(c.Properties, PropertyLogFormat); v != "" {
		c.LogFormat = v
		c.Sources["logFormat"] = SourceProperty
	}
	if v := properties.Get(c.Properties, PropertyJSON); v != "" {
		c.JSON = isTrue(v)
		c.Sources["json"] = SourceProperty
	}
	return nil
}

func isTrue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// yamlErrorLine extracts the line from a yaml.v3 syntax error
// ("yaml: line 3: ...").
func yamlErrorLine(err error) int {
	msg := err.Error()
	const prefix = "yaml: line "
	if !strings.HasPrefix(msg, prefix) {
		return 0
	}
	rest := msg[len(prefix):]
	if i := strings.IndexByte(rest, ':'); i > 0 {
		if n, err := strconv.Atoi(rest[:i]); err == nil {
			return n
		}
	}
	return 0
}
