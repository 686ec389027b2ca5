package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for orphan.
type Config struct {
	// Collection controls which files enter the analysis universe.
	Collection CollectionConfig `koanf:"collection" toml:"collection" yaml:"collection"`

	// Resolution controls how raw imports are mapped to files on disk.
	Resolution ResolutionConfig `koanf:"resolution" toml:"resolution" yaml:"resolution"`

	// Exclude defines file exclusion patterns.
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude" yaml:"exclude"`

	// Scan controls the scan phase.
	Scan ScanConfig `koanf:"scan" toml:"scan" yaml:"scan"`

	// Output controls output formatting.
	Output OutputConfig `koanf:"output" toml:"output" yaml:"output"`
}

// CollectionConfig defines the extension allow-list for the collector.
type CollectionConfig struct {
	Extensions []string `koanf:"extensions" toml:"extensions" yaml:"extensions"`
}

// ResolutionConfig defines the resolver's project conventions.
type ResolutionConfig struct {
	// LibDir is the project-level source root used for package: imports.
	LibDir string `koanf:"lib_dir" toml:"lib_dir" yaml:"lib_dir"`

	// PackagePrefix is the marker that namespaces package-style imports.
	PackagePrefix string `koanf:"package_prefix" toml:"package_prefix" yaml:"package_prefix"`

	// SourceSuffix is the structured-language file suffix (rule 1).
	SourceSuffix string `koanf:"source_suffix" toml:"source_suffix" yaml:"source_suffix"`

	// ModuleSuffix is appended to dotted module paths (rule 3).
	ModuleSuffix string `koanf:"module_suffix" toml:"module_suffix" yaml:"module_suffix"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns" yaml:"patterns"`
	Dirs      []string `koanf:"dirs" toml:"dirs" yaml:"dirs"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore" yaml:"gitignore"`
}

// ScanConfig controls scan-phase behavior.
type ScanConfig struct {
	// Workers is the scan worker count; 0 means 2x NumCPU.
	Workers int `koanf:"workers" toml:"workers" yaml:"workers"`

	// MaxFileSize caps file content size in bytes; 0 means no limit.
	MaxFileSize int64 `koanf:"max_file_size" toml:"max_file_size" yaml:"max_file_size"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format" yaml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color" yaml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose" yaml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Extensions: []string{".py", ".dart", ".kt", ".java", ".xml"},
		},
		Resolution: ResolutionConfig{
			LibDir:        "lib",
			PackagePrefix: "package:",
			SourceSuffix:  ".py",
			ModuleSuffix:  ".dart",
		},
		Exclude: ExcludeConfig{
			Patterns: []string{},
			Dirs: []string{
				".git",
				".dart_tool",
				"__pycache__",
				"build",
				".venv",
			},
			Gitignore: true,
		},
		Scan: ScanConfig{
			Workers:     0,
			MaxFileSize: 0,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"orphan.toml",
		"orphan.yaml",
		"orphan.yml",
		"orphan.json",
		".orphan.toml",
		".orphan.yaml",
		".orphan.yml",
		".orphan.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// Collects reports whether a path's extension is on the allow-list.
func (c *Config) Collects(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range c.Collection.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
