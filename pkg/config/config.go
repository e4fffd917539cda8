// Package config loads the .cxxtags.yaml configuration and maps input files
// to the recognizer that handles them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cxxtags/pkg/cpp"
	"cxxtags/pkg/tag"

	"gopkg.in/yaml.v2"
)

// FileName is the name of the configuration file searched for
const FileName = ".cxxtags.yaml"

// Config represents the structure of a .cxxtags.yaml configuration file
type Config struct {
	Ignore        []string          `yaml:"ignore,omitempty"`
	Define        []string          `yaml:"define,omitempty"`
	If0           bool              `yaml:"if0,omitempty"`
	ExpandMacros  bool              `yaml:"expand-file-macros,omitempty"`
	FileScope     *bool             `yaml:"file-scope,omitempty"`
	ReferenceTags bool              `yaml:"reference-tags,omitempty"`
	Kinds         map[string]bool   `yaml:"kinds,omitempty"`
	Languages     map[string]string `yaml:"languages,omitempty"`
	Exclude       []string          `yaml:"exclude,omitempty"`
	Sort          bool              `yaml:"sort,omitempty"`
	Format        string            `yaml:"format,omitempty"`
	ExtraFileTags bool              `yaml:"extra-file-tags,omitempty"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Exclude: []string{".git", "build", "vendor", "third_party", "node_modules"},
	}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Find searches dir and its parents for a configuration file and returns
// its path, or "" when there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Resolve loads the file named by path, or the one found above dir when
// path is empty. Without a file the defaults are returned.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the kind names and language names of the configuration.
func (c *Config) Validate() error {
	for name := range c.Kinds {
		if _, ok := tag.ParseKind(name); !ok {
			return fmt.Errorf("unknown kind %q", name)
		}
	}
	for ext, lang := range c.Languages {
		if _, ok := ParseLanguage(lang); !ok {
			return fmt.Errorf("unknown language %q for %q", lang, ext)
		}
	}
	return nil
}

// MacroTable builds the ignore tokens and macro definitions of the
// configuration into one table.
func (c *Config) MacroTable() (*cpp.MacroTable, error) {
	table := cpp.NewMacroTable()
	for _, spec := range c.Ignore {
		if err := table.AddIgnore(spec); err != nil {
			return nil, err
		}
	}
	for _, spec := range c.Define {
		if err := table.AddDefine(spec); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// QueueOptions returns the record filters of the configuration. Kinds not
// named keep their default state.
func (c *Config) QueueOptions() tag.Options {
	opts := tag.DefaultOptions()
	if c.FileScope != nil {
		opts.FileScope = *c.FileScope
	}
	opts.ReferenceTags = c.ReferenceTags

	disabled := make(map[tag.Kind]bool, len(opts.Disabled))
	for k, v := range opts.Disabled {
		disabled[k] = v
	}
	for name, enabled := range c.Kinds {
		if k, ok := tag.ParseKind(name); ok {
			disabled[k] = !enabled
		}
	}
	opts.Disabled = disabled
	return opts
}

// SetKind enables or disables a kind by name or letter.
func (c *Config) SetKind(name string, enabled bool) error {
	k, ok := tag.ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown kind %q", name)
	}
	if c.Kinds == nil {
		c.Kinds = make(map[string]bool)
	}
	c.Kinds[k.String()] = enabled
	return nil
}

// IsExcluded reports whether a directory is skipped when walking inputs.
func (c *Config) IsExcluded(dir string) bool {
	base := filepath.Base(dir)
	for _, pattern := range c.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// String renders the configuration as YAML.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// Extensions lists the configured extension overrides in sorted order.
func (c *Config) Extensions() []string {
	exts := make([]string, 0, len(c.Languages))
	for ext := range c.Languages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
