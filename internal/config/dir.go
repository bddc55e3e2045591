package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the bosun global configuration directory.
//
// Resolution:
//   - $BOSUN_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/bosun if set (respects XDG on any platform)
//   - %AppData%/bosun on Windows
//   - ~/.config/bosun on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("BOSUN_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bosun")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "bosun")
		}
	}

	// macOS and Linux: ~/.config/bosun
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bosun")
}
