package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Format  FormatConfig  `mapstructure:"format"`
	PDF     PDFConfig     `mapstructure:"pdf"`
	History HistoryConfig `mapstructure:"history"`
}

// OutputConfig sets where generated artifacts land
type OutputConfig struct {
	DiagramsDir string `mapstructure:"diagrams_dir"` // rendered pitch diagrams
	PDFDir      string `mapstructure:"pdf_dir"`      // compiled session plan PDFs
	HTMLDir     string `mapstructure:"html_dir"`     // compiled HTML plans
}

// FormatConfig controls the text fixing defaults
type FormatConfig struct {
	// MaxWidth is the wrap budget. 0 (the default) wraps to the widest
	// table line in each document, or 120 when there are no tables.
	MaxWidth int    `mapstructure:"max_width"`
	Pattern  string `mapstructure:"pattern"` // batch glob (default *.txt)
}

// PDFConfig configures text-to-PDF font selection
type PDFConfig struct {
	FontFamily string `mapstructure:"font_family"` // family name registered for the TTF
	FontPath   string `mapstructure:"font_path"`   // monospace TTF; empty probes well-known paths
}

// HistoryConfig configures the artifact history database
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // sqlite file; empty uses the data dir
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("output.diagrams_dir", "output/diagrams")
	viper.SetDefault("output.pdf_dir", "output/pdfs")
	viper.SetDefault("output.html_dir", "output/html")
	viper.SetDefault("format.max_width", 0)
	viper.SetDefault("format.pattern", "*.txt")
	viper.SetDefault("history.enabled", true)

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Output.DiagramsDir = expandPath(cfg.Output.DiagramsDir)
	cfg.Output.PDFDir = expandPath(cfg.Output.PDFDir)
	cfg.Output.HTMLDir = expandPath(cfg.Output.HTMLDir)
	cfg.PDF.FontPath = expandPath(cfg.PDF.FontPath)

	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(GetDataDir(), "history.db")
	} else {
		cfg.History.Path = expandPath(cfg.History.Path)
	}

	return &cfg, nil
}

// expandPath expands a leading ~ and $VAR / ${VAR} references
func expandPath(s string) string {
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[2:])
		}
	}
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for pitchkit.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "pitchkit"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "pitchkit"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetDataDir returns the XDG data directory for pitchkit.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "pitchkit")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pitchkit-data") // fallback
	}
	return filepath.Join(homeDir, ".local", "share", "pitchkit")
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`output:
  diagrams_dir: %s
  pdf_dir: %s
  html_dir: %s

format:
  # max_width 0 wraps to the widest table in each document
  max_width: %d
  pattern: "%s"

pdf:
  # font_family: mono
  # font_path: /usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf

history:
  enabled: %t
`, cfg.Output.DiagramsDir, cfg.Output.PDFDir, cfg.Output.HTMLDir,
		cfg.Format.MaxWidth, cfg.Format.Pattern, cfg.History.Enabled)

	return os.WriteFile(path, []byte(content), 0644)
}
