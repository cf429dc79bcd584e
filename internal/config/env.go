package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Env holds settings shared by every kg tool.
type Env struct {
	// Flags
	ConfigFile string

	// Env var or config file values
	ProgramName string
	LogLevel    string
	LogFile     string
}

// Load reads KG_* environment variables and, if present, the config file.
// An empty configFile means $HOME/.config/kg/config.yaml, which may be
// missing.
func Load(configFile string) (*Env, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "kg"))
		}
		v.SetConfigName("config") // Doesn't include extension.
		v.SetConfigType("yaml")   // File name will be "config.yaml".
	}

	v.SetEnvPrefix("kg")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; every setting has an env var.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Env{
		ConfigFile:  configFile,
		ProgramName: v.GetString("program_name"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
	}, nil
}
