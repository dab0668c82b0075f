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
	ProjectsDir string `mapstructure:"projects_dir" yaml:"projects_dir"`
	ExportDir   string `mapstructure:"export_dir" yaml:"export_dir"`
	PDFFont     string `mapstructure:"pdf_font" yaml:"pdf_font"`

	// Labels and defaults applied to new projects
	OldYear         string `mapstructure:"old_year" yaml:"old_year"`
	NewYear         string `mapstructure:"new_year" yaml:"new_year"`
	DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
	DefaultRank     string `mapstructure:"default_rank" yaml:"default_rank"`

	// Parser
	ScanRows int `mapstructure:"scan_rows" yaml:"scan_rows"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"projects_dir", "export_dir", "pdf_font", "old_year", "new_year",
	"default_category", "default_rank", "scan_rows",
	"log_level", "log_format", "log_file",
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".rankdiff"), nil
}

// Path returns the config file location: cfgFile if set, otherwise
// ~/.rankdiff/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.rankdiff/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
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
	v.SetEnvPrefix("RANKDIFF")
	v.AutomaticEnv()

	v.SetDefault("old_year", "2023 - 2024")
	v.SetDefault("new_year", "2024 - 2025")
	v.SetDefault("default_category", "conduct")
	v.SetDefault("default_rank", "good")
	v.SetDefault("scan_rows", 15)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("export_dir", "")
	v.SetDefault("pdf_font", "")
	v.SetDefault("projects_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
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
	if c.ProjectsDir == "" {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		c.ProjectsDir = filepath.Join(dir, "projects")
	}
	if c.ScanRows <= 0 {
		c.ScanRows = 15
	}
	return &c, nil
}

// Set assigns a value by key. Integer keys are validated.
func (c *Global) Set(key, value string) error {
	switch key {
	case "projects_dir":
		c.ProjectsDir = value
	case "export_dir":
		c.ExportDir = value
	case "pdf_font":
		c.PDFFont = value
	case "old_year":
		c.OldYear = value
	case "new_year":
		c.NewYear = value
	case "default_category":
		c.DefaultCategory = value
	case "default_rank":
		c.DefaultRank = value
	case "scan_rows":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("scan_rows must be a positive integer, got %q", value)
		}
		c.ScanRows = n
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "log_file":
		c.LogFile = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the string form of a key's value.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "projects_dir":
		return c.ProjectsDir, nil
	case "export_dir":
		return c.ExportDir, nil
	case "pdf_font":
		return c.PDFFont, nil
	case "old_year":
		return c.OldYear, nil
	case "new_year":
		return c.NewYear, nil
	case "default_category":
		return c.DefaultCategory, nil
	case "default_rank":
		return c.DefaultRank, nil
	case "scan_rows":
		return fmt.Sprintf("%d", c.ScanRows), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "log_file":
		return c.LogFile, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
