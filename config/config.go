// Package config loads parser settings (operator table, nesting limit,
// prefix operator precedence) from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/formula/lexer"
	"github.com/dhamidi/formula/parser"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// OperatorEntry configures one binary operator by its symbol.
type OperatorEntry struct {
	Symbol     string `toml:"symbol" yaml:"symbol"`
	Precedence int    `toml:"precedence" yaml:"precedence"`
	Assoc      string `toml:"assoc" yaml:"assoc"`
}

type Config struct {
	// MaxDepth bounds parser recursion; 0 means parser.DefaultMaxDepth.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// UnaryPrecedence is the precedence prefix operators apply at; 0 means
	// parser.DefaultUnaryPrecedence.
	UnaryPrecedence int `toml:"unary_precedence" yaml:"unary_precedence"`
	// ReplaceDefaults starts from an empty operator table instead of the
	// default one.
	ReplaceDefaults bool            `toml:"replace_defaults" yaml:"replace_defaults"`
	Operators       []OperatorEntry `toml:"operators" yaml:"operators"`
}

func Default() *Config {
	return &Config{}
}

func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Load reads a config file. The format follows the extension; files with
// an unknown extension are read as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	format := DetectFormat(path)
	if format == FormatAuto {
		format = FormatTOML
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML, FormatAuto:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.UnaryPrecedence < 0 {
		return fmt.Errorf("unary_precedence must not be negative, got %d", c.UnaryPrecedence)
	}
	_, err := c.OperatorTable()
	return err
}

// OperatorTable builds the operator table described by c.
func (c *Config) OperatorTable() (*parser.OperatorTable, error) {
	base := parser.DefaultOperators()
	if c.ReplaceDefaults {
		base = parser.MustOperatorTable()
	}

	ops := make([]parser.Operator, 0, len(c.Operators))
	for i, entry := range c.Operators {
		kind, ok := lexer.LookupOperator(entry.Symbol)
		if !ok {
			return nil, fmt.Errorf("operators[%d]: unknown operator symbol %q", i, entry.Symbol)
		}
		assoc, err := parser.ParseAssoc(entry.Assoc)
		if err != nil {
			return nil, fmt.Errorf("operators[%d]: %w", i, err)
		}
		ops = append(ops, parser.Operator{Kind: kind, Precedence: entry.Precedence, Assoc: assoc})
	}

	table, err := base.With(ops...)
	if err != nil {
		return nil, fmt.Errorf("operators: %w", err)
	}
	return table, nil
}

// Options converts c into parser options.
func (c *Config) Options() ([]parser.Option, error) {
	table, err := c.OperatorTable()
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{parser.WithOperators(table)}
	if c.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.MaxDepth))
	}
	if c.UnaryPrecedence > 0 {
		opts = append(opts, parser.WithUnaryPrecedence(c.UnaryPrecedence))
	}
	return opts, nil
}
