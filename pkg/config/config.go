// Package config loads career-roadmap settings from a JSON file, a .env file
// and the environment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables that override file values.
const (
	EnvOutputDir   = "CAREER_ROADMAP_OUTPUT_DIR"
	EnvListen      = "CAREER_ROADMAP_LISTEN"
	EnvPageSize    = "CAREER_ROADMAP_PAGE_SIZE"
	EnvLogLevel    = "CAREER_ROADMAP_LOG_LEVEL"
	EnvDatabaseURL = "DATABASE_URL"
)

// Defaults applied when a value is not set anywhere.
const (
	DefaultOutputDir = "./roadmaps"
	DefaultPageSize  = "A4"
	DefaultListen    = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config represents the application configuration.
type Config struct {
	OutputDir   string    `json:"output_dir" validate:"required"`
	PageSize    string    `json:"page_size" validate:"oneof=A3 A4 A5 Letter Legal"`
	Compress    bool      `json:"compress"`
	Listen      string    `json:"listen" validate:"hostname_port"`
	DatabaseURL string    `json:"database_url,omitempty" validate:"omitempty,pgdsn"`
	Log         LogConfig `json:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" validate:"oneof=text json"`
}

// Defaults returns a configuration with every default applied.
func Defaults() (cfg Config) {
	cfg = Config{}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultPath returns $HOME/.career-roadmap/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".career-roadmap", "config.json")
	return path, err
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) (err error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		_, statErr := os.Stat(path)
		if statErr == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return err
	}

	err = godotenv.Load(existing...)
	if err != nil {
		err = errors.Wrap(err, "failed to load .env file")
		return err
	}
	return err
}

// Load reads configuration from file with environment variable overrides.
// With an empty configPath the default location is used, and a missing
// default file means "use defaults". An explicit path must exist.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	optional := false
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
		optional = true
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && optional:
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'career-roadmap init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		c.PageSize = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.PageSize == "" {
		c.PageSize = DefaultPageSize
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks field values.
func (c *Config) Validate() (err error) {
	validate := validator.New()
	err = validate.RegisterValidation("pgdsn", validDSN)
	if err != nil {
		err = errors.Wrap(err, "failed to register dsn validation")
		return err
	}

	err = validate.Struct(c)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			err = errors.Errorf("invalid value %q for %s (rule: %s)", first.Value(), first.Namespace(), first.Tag())
			return err
		}
		return err
	}
	return err
}

// validDSN accepts anything pgx can parse: postgres:// URLs and
// key=value connection strings.
func validDSN(fl validator.FieldLevel) (ok bool) {
	_, err := pgconn.ParseConfig(fl.Field().String())
	ok = err == nil
	return ok
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}

	defaultConfig := Defaults()
	defaultConfig.OutputDir = filepath.Join(homeDir, "Documents", "Roadmaps")

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
