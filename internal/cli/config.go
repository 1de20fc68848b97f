package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/phonebook/internal/logger"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeySeedFile  = "seed_file"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"

	defaultBackend   = types.BackendMemory
	defaultLogLevel  = "warn"
	defaultLogFormat = logger.FormatText
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Phonebook CLI configuration

# Directory backend: memory or sqlite
backend: memory

# YAML file of profiles loaded at startup (optional; overridable by --seed)
# seed_file:

# Log level: debug, info, warn, error
log_level: warn

# Log format: text or json
log_format: text
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. PHONEBOOK_BACKEND,
// PHONEBOOK_LOG_LEVEL and PHONEBOOK_LOG_FORMAT override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	// seed_file is not bound here; PHONEBOOK_SEED_FILE ranks below the file
	// and is applied by paths.ResolveSeedFile.
	for key, env := range map[string]string{
		cfgKeyBackend:   "PHONEBOOK_BACKEND",
		cfgKeyLogLevel:  "PHONEBOOK_LOG_LEVEL",
		cfgKeyLogFormat: "PHONEBOOK_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
