// Package config loads contractgen settings from contractgen.toml,
// CONTRACTGEN_* environment variables and built-in defaults.
package config

import (
	"path/filepath"
)

// Config is the complete generator configuration. It is passed explicitly to
// the driver; nothing reads it from package state.
type Config struct {
	Contracts  ContractsConfig  `mapstructure:"contracts" toml:"contracts"`
	Parser     ParserConfig     `mapstructure:"parser" toml:"parser"`
	TypeScript TypeScriptConfig `mapstructure:"typescript" toml:"typescript"`
	Dart       DartConfig       `mapstructure:"dart" toml:"dart"`
	OpenAPI    OpenAPIConfig    `mapstructure:"openapi" toml:"openapi"`
	Markdown   MarkdownConfig   `mapstructure:"markdown" toml:"markdown"`

	// BaseDir is the directory relative paths resolve against: the directory
	// of the loaded config file, or empty for the working directory.
	BaseDir string `mapstructure:"-" toml:"-" validate:"-"`
}

// ContractsConfig lists the contract sources, parsed in order.
type ContractsConfig struct {
	Files []string `mapstructure:"files" toml:"files" validate:"min=1,dive,required"`
}

// ParserConfig controls how parser diagnostics are reported.
type ParserConfig struct {
	// Strict logs skipped lines and dangling type references as warnings
	// instead of debug messages
	Strict bool `mapstructure:"strict" toml:"strict"`
}

// TypeScriptConfig configures types.ts, index.ts and hooks.ts output.
type TypeScriptConfig struct {
	TypesDir     string `mapstructure:"types_dir" toml:"types_dir" validate:"required"`
	ClientDir    string `mapstructure:"client_dir" toml:"client_dir" validate:"required"`
	ClientImport string `mapstructure:"client_import" toml:"client_import" validate:"required"` // module exporting apiRequest
	TypesImport  string `mapstructure:"types_import" toml:"types_import" validate:"required"`   // types.ts as seen from client_dir
	QueryPackage string `mapstructure:"query_package" toml:"query_package" validate:"required"`
}

// DartConfig configures models.dart, api_client.dart and pubspec.yaml.
type DartConfig struct {
	OutputDir         string            `mapstructure:"output_dir" toml:"output_dir" validate:"required"`
	PubspecPath       string            `mapstructure:"pubspec_path" toml:"pubspec_path,omitempty"` // default: parent of output_dir
	PackageName       string            `mapstructure:"package_name" toml:"package_name" validate:"required,dart_package"`
	Description       string            `mapstructure:"description" toml:"description"`
	Version           string            `mapstructure:"version" toml:"version" validate:"required,semver"`
	ClientClass       string            `mapstructure:"client_class" toml:"client_class" validate:"required,identifier"`
	SDKConstraint     string            `mapstructure:"sdk_constraint" toml:"sdk_constraint" validate:"required"`
	FlutterConstraint string            `mapstructure:"flutter_constraint" toml:"flutter_constraint"` // empty for a pure Dart package
	TimeoutSeconds    int               `mapstructure:"timeout_seconds" toml:"timeout_seconds" validate:"gt=0"`
	Dependencies      map[string]string `mapstructure:"dependencies" toml:"dependencies"`
	DevDependencies   map[string]string `mapstructure:"dev_dependencies" toml:"dev_dependencies"`
}

// OpenAPIConfig configures the OpenAPI document's info and servers.
type OpenAPIConfig struct {
	OutputFile   string         `mapstructure:"output_file" toml:"output_file" validate:"required"`
	Title        string         `mapstructure:"title" toml:"title" validate:"required"`
	Description  string         `mapstructure:"description" toml:"description"`
	Version      string         `mapstructure:"version" toml:"version" validate:"required"`
	ContactName  string         `mapstructure:"contact_name" toml:"contact_name"`
	ContactEmail string         `mapstructure:"contact_email" toml:"contact_email" validate:"omitempty,email"`
	LicenseName  string         `mapstructure:"license_name" toml:"license_name"`
	LicenseURL   string         `mapstructure:"license_url" toml:"license_url" validate:"omitempty,url"`
	Servers      []ServerConfig `mapstructure:"servers" toml:"servers" validate:"dive"`
	SwaggerUIDir string         `mapstructure:"swagger_ui_dir" toml:"swagger_ui_dir,omitempty"` // optional, holds index.html
}

// ServerConfig is one entry of the OpenAPI servers list.
type ServerConfig struct {
	URL         string `mapstructure:"url" toml:"url" validate:"required,url"`
	Description string `mapstructure:"description" toml:"description"`
}

// MarkdownConfig configures the Markdown API reference.
type MarkdownConfig struct {
	OutputDir string `mapstructure:"output_dir" toml:"output_dir" validate:"required"`
}

// Resolve returns p relative to the config's base directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// ContractFiles returns the configured contract paths, resolved.
func (c *Config) ContractFiles() []string {
	files := make([]string, 0, len(c.Contracts.Files))
	for _, f := range c.Contracts.Files {
		files = append(files, c.Resolve(f))
	}
	return files
}

// PubspecFile returns where pubspec.yaml is written.
func (c *Config) PubspecFile() string {
	if c.Dart.PubspecPath != "" {
		return c.Resolve(c.Dart.PubspecPath)
	}
	return filepath.Join(filepath.Dir(c.Resolve(c.Dart.OutputDir)), "pubspec.yaml")
}
