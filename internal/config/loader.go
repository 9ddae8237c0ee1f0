package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigDir is the directory holding the config file, relative to home.
	ConfigDir = ".ssh"
	// ConfigFileName is the config file name.
	ConfigFileName = "lazyconn.json"
	// ContainerEnv marks a run from inside a container when set to "true".
	ContainerEnv = "IS_CONTAINER"
)

// DefaultPath returns ~/.ssh/lazyconn.json.
func DefaultPath() string {
	return ExpandTilde(filepath.Join("~", ConfigDir, ConfigFileName))
}

// Load reads config from the specified path.
// A missing file is not an error: it returns a nil *Config.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access config file: "+path,
			"Check file permissions")
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrConfig,
			"Config path is a directory: "+path,
			"Point --config at a JSON file")
	}

	// Keys are matched case-insensitively: viper lowercases them on read.
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check that "+path+" is valid JSON")
	}

	return parseConfig(v, path)
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Expected {\"match\": {\"name\": [{\"contains\": \"...\", \"user\": \"...\"}]}} in "+path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	cfg.User = strings.TrimSpace(cfg.User)
	for i := range cfg.Match.Name {
		cfg.Match.Name[i].User = strings.TrimSpace(cfg.Match.Name[i].User)
	}

	return cfg, nil
}

// Env holds settings read from the process environment.
type Env struct {
	// Container is true when running inside a container image.
	Container bool
}

// LoadEnv reads environment-provided settings.
func LoadEnv() Env {
	v := viper.New()
	_ = v.BindEnv("container", ContainerEnv)

	return Env{
		Container: v.GetString("container") == "true",
	}
}
