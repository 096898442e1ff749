package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Delimiter for CSV input: "," | ";" | "tab". Empty means auto-detect.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Format of check output: markdown | yaml | json.
	Format string `mapstructure:"format" yaml:"format"`
	// JoinKeyColumn names the synthetic key column added by split.
	JoinKeyColumn string `mapstructure:"join_key_column" yaml:"join_key_column"`
	// Exclude lists columns never placed in the PII frame.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// ExtraKeywords extends the fixed column-name keyword set.
	ExtraKeywords []string `mapstructure:"extra_keywords" yaml:"extra_keywords"`
	// MaxRows limits rows read from input files; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.tablesafe/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tablesafe")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLESAFE")
	v.AutomaticEnv()

	v.SetDefault("delimiter", "")
	v.SetDefault("format", "markdown")
	v.SetDefault("join_key_column", "join_key")
	v.SetDefault("exclude", []string{})
	v.SetDefault("extra_keywords", []string{})
	v.SetDefault("max_rows", 0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tablesafe")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
