package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"edurpg/internal/storage"
)

const EnvPrefix = "EDURPG"

type Config struct {
	Storage storage.Config `mapstructure:"storage"`
	Log     LogConfig      `mapstructure:"log"`
	Game    GameConfig     `mapstructure:"game"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
	// Output is a file path, "stderr" or "stdout". Empty means
	// <data_dir>/edurpg.log.
	Output string `mapstructure:"output"`
}

type GameConfig struct {
	// Seed fixes the random source; 0 picks one from the clock.
	Seed int64 `mapstructure:"seed"`
}

// Load reads configuration from defaults, an optional YAML file and
// EDURPG_* environment variables, in increasing priority. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.data_dir", dataDir)
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_prefix", storage.DefaultRedisPrefix)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.output", "")
	v.SetDefault("game.seed", 0)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.Storage.DataDir, "edurpg.db")
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = filepath.Join(cfg.Storage.DataDir, "edurpg.log")
	}
	return cfg, nil
}
