package app

import (
	"fmt"
	"os"
	"path/filepath"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.json"
	EnvPrefix      = "QVAULT"

	DefaultChainID = "qbtc-local"
)

type Config struct {
	ChainID   string `mapstructure:"chain_id" json:"chain_id"`
	DBBackend string `mapstructure:"db_backend" json:"db_backend"`
	DBDir     string `mapstructure:"db_dir" json:"db_dir"`
	LogLevel  string `mapstructure:"log_level" json:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		ChainID:   DefaultChainID,
		DBBackend: string(dbm.GoLevelDBBackend),
		DBDir:     "data",
		LogLevel:  "info",
	}
}

func (c Config) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chain_id must not be empty")
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db_backend %q", c.DBBackend)
	}
	return nil
}

// GetConfig reads config.json from home. Every key can be overridden with a
// QVAULT_ prefixed environment variable, e.g. QVAULT_CHAIN_ID.
func GetConfig(home string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(home)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("chain_id", def.ChainID)
	v.SetDefault("db_backend", def.DBBackend)
	v.SetDefault("db_dir", def.DBDir)
	v.SetDefault("log_level", def.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteConfig writes cfg to home/config.json, creating home if needed.
func WriteConfig(home string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return fmt.Errorf("create home: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("chain_id", cfg.ChainID)
	v.Set("db_backend", cfg.DBBackend)
	v.Set("db_dir", cfg.DBDir)
	v.Set("log_level", cfg.LogLevel)
	if err := v.WriteConfigAs(filepath.Join(home, ConfigFileName)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// OpenDB opens the state database described by cfg under home.
func OpenDB(home string, cfg Config) (dbm.DB, error) {
	db, err := dbm.NewDB("state", dbm.BackendType(cfg.DBBackend), filepath.Join(home, cfg.DBDir))
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	return db, nil
}
