package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fennmarsh/scribe/internal/constants"
	"github.com/fennmarsh/scribe/internal/sanitize"
)

// ComposerConfig tunes the modal composer. SplitPercent outside the
// draggable bounds falls back to the default at load time.
type ComposerConfig struct {
	SplitPercent float64 `yaml:"split_percent"  json:"split_percent"`
	PreviewStyle string  `yaml:"preview_style"  json:"preview_style"`
	Sanitize     *bool   `yaml:"sanitize"       json:"sanitize"`

	// ExtraElements and ExtraAttributes widen the sanitizer's base
	// allow-list, merged over it per call.
	ExtraElements   []string `yaml:"extra_elements,omitempty"   json:"extra_elements,omitempty"`
	ExtraAttributes []string `yaml:"extra_attributes,omitempty" json:"extra_attributes,omitempty"`
}

type Config struct {
	DraftsDir string         `yaml:"drafts_dir" json:"drafts_dir"`
	Composer  ComposerConfig `yaml:"composer"   json:"composer"`

	home string `yaml:"-"`
}

const (
	minSplit = 25.0
	maxSplit = 75.0
)

func Load(home string) (*Config, error) {
	cfg := &Config{home: home}

	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.DraftsDir == "" {
		cfg.DraftsDir = filepath.Join(
			cfg.home+constants.ConfigDir,
			constants.DefaultDraftsDir,
		)
	}
	if cfg.Composer.PreviewStyle == "" {
		cfg.Composer.PreviewStyle = constants.DefaultPreviewStyle
	}
	if cfg.Composer.SplitPercent < minSplit || cfg.Composer.SplitPercent > maxSplit {
		cfg.Composer.SplitPercent = (minSplit + maxSplit) / 2
	}
	if cfg.Composer.Sanitize == nil {
		enabled := true
		cfg.Composer.Sanitize = &enabled
	}
}

// SanitizeEnabled defaults to true; turning it off is the documented
// passthrough degradation, not a recommended setting.
func (cfg *Config) SanitizeEnabled() bool {
	return cfg.Composer.Sanitize == nil || *cfg.Composer.Sanitize
}

// Gate builds the sanitization gate the composer should use.
func (cfg *Config) Gate() *sanitize.Gate {
	if !cfg.SanitizeEnabled() {
		return sanitize.Passthrough()
	}
	return sanitize.NewGate(cfg.ExtendedPolicy())
}

// ExtendedPolicy is the base policy widened by the config's extra
// allow-list entries.
func (cfg *Config) ExtendedPolicy() sanitize.Policy {
	base := sanitize.DefaultPolicy()
	if len(cfg.Composer.ExtraElements) == 0 && len(cfg.Composer.ExtraAttributes) == 0 {
		return base
	}
	extra := sanitize.Policy{}
	if len(cfg.Composer.ExtraElements) > 0 {
		extra.Elements = append(base.Elements, cfg.Composer.ExtraElements...)
	}
	if len(cfg.Composer.ExtraAttributes) > 0 {
		extra.Attributes = append(base.Attributes, cfg.Composer.ExtraAttributes...)
	}
	return base.Merge(&extra)
}

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	path := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
