package config

import (
	"fmt"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	configName  string = ".cfastates"
	configType  string = "yaml"
	historyName string = ".cfastates_history"

	KeyNormalizeRSP = "normalize-rsp"
	KeyLog          = "log"
	KeyLogOutput    = "log-output"
)

// Config defines all configuration options available to be set through the
// config file or the command line.
type Config struct {
	// NormalizeRSP collapses CFA=RSP+<offset> states into CFA=RSP+N.
	NormalizeRSP bool `mapstructure:"normalize-rsp"`
	// Log enables diagnostic logging on stderr.
	Log bool `mapstructure:"log"`
	// LogOutput is a comma separated list of components that should log.
	LogOutput string `mapstructure:"log-output"`
}

// DefaultPath returns the path of the config file in the home directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configName+"."+configType), nil
}

// HistoryPath returns the path of the explorer's prompt history file.
func HistoryPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyName), nil
}

// ReadInConfig makes v read the config file at path. With an empty path the
// file in the home directory is used if it exists.
func ReadInConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		// no home, no default config
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}
