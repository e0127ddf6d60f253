package config

import (
	"os"
	"path/filepath"
)

// GetHome returns ROOMSCHED_HOME or ~/.roomsched default
func GetHome() string {
	home := os.Getenv("ROOMSCHED_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".roomsched"
		}
		return filepath.Join(homeDir, ".roomsched")
	}
	return ExpandPath(home)
}

// GetDBPath returns $ROOMSCHED_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetSettingsPath returns $ROOMSCHED_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
