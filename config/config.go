package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Normalized.
const (
	DefaultPort         = "8080"
	DefaultStorage      = "json"
	DefaultDBFile       = "db.json"
	DefaultWidth        = 20
	DefaultHeight       = 20
	DefaultEnemies      = 8
	DefaultCollectables = 10
)

// Config is the full server configuration, loadable from a YAML file with
// environment variable overrides on top.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // json or postgres
	DSN    string `yaml:"dsn"`    // postgres connection string
	File   string `yaml:"file"`   // json store path
}

// GameConfig sets the shape of every new game.
type GameConfig struct {
	Width        int   `yaml:"width"`
	Height       int   `yaml:"height"`
	Enemies      int   `yaml:"enemies"`
	Collectables int   `yaml:"collectables"`
	Seed         int64 `yaml:"seed"` // 0 means seed from the clock
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and fills in defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if driver := os.Getenv("DB_TYPE"); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if file := os.Getenv("DB_FILE"); file != "" {
		cfg.Storage.File = file
	}

	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Normalized returns a config with defaults applied to unset fields.
func (c Config) Normalized() Config {
	normalized := c
	if normalized.Server.Port == "" {
		normalized.Server.Port = DefaultPort
	}
	if normalized.Storage.Driver == "" {
		normalized.Storage.Driver = DefaultStorage
	}
	if normalized.Storage.File == "" {
		normalized.Storage.File = DefaultDBFile
	}
	if normalized.Game.Width == 0 {
		normalized.Game.Width = DefaultWidth
	}
	if normalized.Game.Height == 0 {
		normalized.Game.Height = DefaultHeight
	}
	if normalized.Game.Enemies == 0 {
		normalized.Game.Enemies = DefaultEnemies
	}
	if normalized.Game.Collectables == 0 {
		normalized.Game.Collectables = DefaultCollectables
	}
	return normalized
}

// Validate rejects configs no game could be built from.
func (c Config) Validate() error {
	if c.Storage.Driver != "json" && c.Storage.Driver != "postgres" {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("invalid board dimensions %dx%d", c.Game.Width, c.Game.Height)
	}
	if c.Game.Enemies < 0 || c.Game.Collectables < 0 {
		return fmt.Errorf("negative entity count (enemies=%d collectables=%d)", c.Game.Enemies, c.Game.Collectables)
	}
	return nil
}
