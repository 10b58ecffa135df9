// Package config loads the glacier.json codegen configuration: named schema
// source profiles plus output and formatting settings.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "glacier.json"

// DefaultRuntime is the import path generated code binds against.
const DefaultRuntime = "github.com/glacierql/glacier"

// Methods a profile can use to obtain the schema.
const (
	MethodEndpoint     = "endpoint"      // introspect a live URL
	MethodFile         = "file"          // read SDL from a file
	MethodPipeResponse = "pipe-response" // read an introspection response from stdin
	MethodPipeSDL      = "pipe-sdl"      // read SDL from stdin
)

// Config is the parsed glacier.json.
type Config struct {
	// Profiles are named schema sources; the CLI picks one by name
	// ("default" unless told otherwise).
	Profiles map[string]Profile `json:"profiles"`

	// Output is the directory the generated package is written to. Required.
	Output string `json:"output"`

	// Package is the generated Go package name. Defaults to the base name
	// of Output.
	Package string `json:"package"`

	// Indent is the indent unit of generated files. Defaults to a tab.
	Indent string `json:"indent"`

	// LineBreak terminates generated lines. Defaults to "\n".
	LineBreak string `json:"lineBreak"`

	// Runtime is the codec runtime import path. Defaults to DefaultRuntime.
	Runtime string `json:"runtime"`
}

// Profile is one way of obtaining the schema.
type Profile struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Path   string `json:"path"`
}

// Load reads and validates the config at path, applying defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("config: %s declares no profiles", path)
	}
	for name, p := range cfg.Profiles {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("config: profile %q: %w", name, err)
		}
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("config: %s is missing \"output\"", path)
	}
	if cfg.Package == "" {
		cfg.Package = filepath.Base(cfg.Output)
	}
	if cfg.Indent == "" {
		cfg.Indent = "\t"
	}
	if cfg.LineBreak == "" {
		cfg.LineBreak = "\n"
	}
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	return &cfg, nil
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("config: no profile named %q", name)
	}
	return p, nil
}

func (p Profile) validate() error {
	switch p.Method {
	case MethodEndpoint:
		if p.URL == "" {
			return fmt.Errorf("method %q requires \"url\"", p.Method)
		}
	case MethodFile:
		if p.Path == "" {
			return fmt.Errorf("method %q requires \"path\"", p.Method)
		}
	case MethodPipeResponse, MethodPipeSDL:
	case "":
		return fmt.Errorf("missing \"method\"")
	default:
		return fmt.Errorf("unknown method %q", p.Method)
	}
	return nil
}
