// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "TUBESCRIBE_CONFIG_PATH"

// EnvExportsPath overrides the directory downloaded transcriptions are written to.
const EnvExportsPath = "TUBESCRIBE_EXPORTS_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden via the TUBESCRIBE_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Tubescribe))
}

// Cache resolves the absolute path to the application's cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Tubescribe))
}

// Logs resolves the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Exports resolves the default directory for downloaded transcription files.
func Exports() string {
	if custom, ok := os.LookupEnv(EnvExportsPath); ok {
		return ensureDir(custom)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return ensureDir(filepath.Join(home, "Documents", constant.Tubescribe))
	}
	return ensureDir(filepath.Join(Config(), "exports"))
}

// Temp resolves a volatile directory for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Tubescribe))
}
