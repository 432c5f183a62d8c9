package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "atlas"

// Dirs holds the platform-resolved locations for the config file and
// the database. XDG environment variables win over the platform
// defaults.
type Dirs struct {
	Config string
	Data   string
}

// ResolveDirs returns the platform-appropriate directories for this
// installation.
func ResolveDirs() *Dirs {
	return &Dirs{
		Config: resolveDir("XDG_CONFIG_HOME", platformConfigDefault()),
		Data:   resolveDir("XDG_DATA_HOME", platformDataDefault()),
	}
}

func resolveDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	return fallback
}

func platformConfigDefault() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appDirName, "config")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", appDirName)
	default:
		return filepath.Join(os.Getenv("HOME"), ".config", appDirName)
	}
}

func platformDataDefault() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appDirName, "data")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", appDirName)
	default:
		return filepath.Join(os.Getenv("HOME"), ".local", "share", appDirName)
	}
}

// DefaultConfigPath returns the platform-default config file location.
func DefaultConfigPath() string {
	return filepath.Join(ResolveDirs().Config, "config.yaml")
}

// DefaultDatabasePath returns the platform-default database location.
func DefaultDatabasePath() string {
	return filepath.Join(ResolveDirs().Data, "atlas.db")
}
