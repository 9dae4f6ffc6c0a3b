// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/filesystem"
	"github.com/tubescribe/tubescribe/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// DotEnvFiles lists the .env files consulted before the environment is bound, in precedence order.
func DotEnvFiles() []string {
	return []string{
		".env",
		filepath.Join(where.Config(), ".env"),
	}
}

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	viper.SetConfigName(constant.Tubescribe)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Tubescribe)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// loadDotEnv populates the process environment from .env files without overriding variables that are already set.
func loadDotEnv() error {
	for _, path := range DotEnvFiles() {
		exists, err := filesystem.API().Exists(path)
		if err != nil || !exists {
			continue
		}

		f, err := filesystem.API().Open(path)
		if err != nil {
			return err
		}

		vars, err := godotenv.Parse(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		for k, v := range vars {
			if err := setenvIfUnset(k, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func setenvIfUnset(k, v string) error {
	if _, ok := os.LookupEnv(k); ok {
		return nil
	}
	return os.Setenv(k, v)
}
