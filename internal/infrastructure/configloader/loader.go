package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"roast_agent/internal/config"
	"roast_agent/internal/pkg/utils"
)

// Environment variables overriding the YAML configuration.
const (
	EnvConfigPath       = "CONFIG_PATH"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvOpenRouterModel  = "OPENROUTER_MODEL"
	EnvAppURL           = "APP_URL"
	EnvSuiNetwork       = "SUI_NETWORK"
	EnvSuiRPCURL        = "SUI_RPC_URL"
	EnvPort             = "PORT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvFetchTimeoutMs   = "FETCH_TIMEOUT_MS"
	EnvGenerateTimeout  = "GENERATE_TIMEOUT_MS"

	DefaultConfigPath = "config/config.yaml"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logrus.Debugf("No env file at %s, skipping", f)
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
		logrus.Infof("Loaded environment from %s", f)
	}
	return nil
}

// Load reads .env, then the YAML file at path (or CONFIG_PATH, or the
// default path when path is empty), then applies environment overrides.
func Load(path string) (*config.Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if path == "" {
		path = utils.GetEnv(EnvConfigPath, DefaultConfigPath)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overlays environment variables on cfg. Blank variables are ignored.
func ApplyEnv(cfg *config.Config) error {
	cfg.OpenRouter.APIKey = utils.GetEnv(EnvOpenRouterAPIKey, cfg.OpenRouter.APIKey)
	cfg.OpenRouter.Model = utils.GetEnv(EnvOpenRouterModel, cfg.OpenRouter.Model)
	cfg.OpenRouter.AppURL = strings.TrimRight(utils.GetEnv(EnvAppURL, cfg.OpenRouter.AppURL), "/")
	cfg.Sui.Network = strings.ToLower(utils.GetEnv(EnvSuiNetwork, cfg.Sui.Network))
	cfg.Sui.RPCURL = utils.GetEnv(EnvSuiRPCURL, cfg.Sui.RPCURL)
	cfg.Server.Port = utils.GetEnv(EnvPort, cfg.Server.Port)
	cfg.Logging.Level = utils.GetEnv(EnvLogLevel, cfg.Logging.Level)

	var err error
	if cfg.Roast.FetchTimeoutMs, err = envMillis(EnvFetchTimeoutMs, cfg.Roast.FetchTimeoutMs); err != nil {
		return err
	}
	if cfg.Roast.GenerateTimeoutMs, err = envMillis(EnvGenerateTimeout, cfg.Roast.GenerateTimeoutMs); err != nil {
		return err
	}
	return nil
}

func envMillis(key string, fallback int64) (int64, error) {
	raw := utils.GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer of milliseconds", key, raw)
	}
	return v, nil
}
