// Package where resolves application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/cinelink/cinelink/constant"
	"github.com/cinelink/cinelink/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "CINELINK_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring CINELINK_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Cinelink))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Cinelink))
}

// Logs resolves the directory used when logs.write is enabled.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Titles resolves the catalog title cache file.
func Titles() string {
	return filepath.Join(Cache(), "titles.json")
}

// Queries resolves the resolved-title suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
