// Package config loads the rentd configuration: defaults, an optional YAML
// file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Fonts     FontsConfig     `yaml:"fonts"`
	Templates TemplatesConfig `yaml:"templates"`
	Signature SignatureConfig `yaml:"signature"`
	Share     ShareConfig     `yaml:"share"`
	Mail      MailConfig      `yaml:"mail"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	PublicURL       string        `yaml:"public_url"` // prefix for share QR codes
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig configures the contract store.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// FontsConfig points at TrueType faces with Hebrew coverage. Empty paths
// use the built-in Go fonts.
type FontsConfig struct {
	Regular string `yaml:"regular"`
	Bold    string `yaml:"bold"`
}

// TemplatesConfig overrides the embedded clause assets.
type TemplatesConfig struct {
	Questions    string `yaml:"questions"`
	General      string `yaml:"general"`
	Master       string `yaml:"master"`
	TitleSection string `yaml:"title_section"`
	RawValues    bool   `yaml:"raw_values"`
}

// SignatureConfig places stamped signatures.
type SignatureConfig struct {
	DefaultY float64 `yaml:"default_y"`
}

// ShareConfig controls the stamps added to shared and signed copies.
type ShareConfig struct {
	QRCode        bool `yaml:"qr_code"`
	ReferenceCode bool `yaml:"reference_code"`
}

// MailConfig configures the SMTP relay.
type MailConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether a relay host is configured.
func (c MailConfig) Enabled() bool { return c.Host != "" }

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadBytes:  20 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage:   StorageConfig{Dir: "public/contracts"},
		Signature: SignatureConfig{DefaultY: 120},
		Share:     ShareConfig{QRCode: true, ReferenceCode: true},
		Mail: MailConfig{
			Host:    "smtp.gmail.com",
			Port:    587,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("RENT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("RENT_STORAGE_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("RENT_PUBLIC_URL"); v != "" {
		c.Server.PublicURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SMTP_PORT: %w", err)
		}
		c.Mail.Port = port
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		c.Mail.User = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		c.Mail.Password = v
	}
	return nil
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is empty")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("config: storage.dir is empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive")
	}
	if c.Mail.Enabled() && (c.Mail.Port <= 0 || c.Mail.Port > 65535) {
		return fmt.Errorf("config: invalid mail.port %d", c.Mail.Port)
	}
	if c.Fonts.Bold != "" && c.Fonts.Regular == "" {
		return fmt.Errorf("config: fonts.bold set without fonts.regular")
	}

	valid := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("config: invalid logging.level %q (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}
