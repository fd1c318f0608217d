// Package application holds application-wide identity and filesystem
// locations.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "codeeval"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// Directory returns the codeeval configuration directory path.
// Linux: ~/.config/codeeval (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\codeeval (via os.UserCacheDir)
func Directory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// ConfigPath returns the path of the JSON config file.
func ConfigPath() (string, error) {
	dir, err := Directory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

// DatabasePath returns the path of the local cache database.
func DatabasePath() (string, error) {
	dir, err := Directory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, AppName+".db"), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
