package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the optional per-directory config file looked up in the scan root
const FileName = ".codexport.toml"

// DefaultOutput is the name of the exported document
const DefaultOutput = "exported_code.md"

// Config represents the application configuration
type Config struct {
	Root    string     `toml:"root"`
	Output  string     `toml:"output"`
	LogFile string     `toml:"log_file"`
	Exclude []string   `toml:"exclude"` // extra relative paths never listed by the scanner
	UI      UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	PreviewStyle string `toml:"preview_style"` // chroma style used by the preview pager
}

// ConfigService handles configuration loading. The tool never writes its
// configuration back.
type ConfigService interface {
	Load(root string) (*Config, error)
	LoadFromPath(path string) (*Config, error)
}

// configService is the concrete implementation
type configService struct{}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// Load reads FileName from root if present and falls back to defaults
func (cs *configService) Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Root = root
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if cfg.Root == "" {
		cfg.Root = root
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path, layered over the
// defaults. Root stays empty unless the file sets it.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Root = ""
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.UI.PreviewStyle == "" {
		cfg.UI.PreviewStyle = DefaultConfig().UI.PreviewStyle
	}

	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Root:   ".",
		Output: DefaultOutput,
		UI: UISettings{
			PreviewStyle: "monokai",
		},
	}
}

// OutputPath resolves the output file against the working directory
func (c *Config) OutputPath() (string, error) {
	abs, err := filepath.Abs(c.Output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return abs, nil
}

// ExcludedPaths returns the slash separated paths, relative to Root, that the
// scanner must not list. The output document is always among them when it
// lives inside the root.
func (c *Config) ExcludedPaths() []string {
	excluded := make([]string, 0, len(c.Exclude)+1)
	for _, p := range c.Exclude {
		excluded = append(excluded, filepath.ToSlash(filepath.Clean(p)))
	}

	out, err := c.OutputPath()
	if err != nil {
		return excluded
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return excluded
	}
	rel, err := filepath.Rel(root, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return excluded
	}
	return append(excluded, filepath.ToSlash(rel))
}
