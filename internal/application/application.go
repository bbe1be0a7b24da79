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
	AppName = "phonebook"

	// Version is reported by the version command
	Version = "0.3.0"

	// SettingsFileName is the bbolt database holding persisted settings
	SettingsFileName = "phonebook.bolt"

	// PasswordsFileName is the default ini file holding admin passwords
	PasswordsFileName = "admin.ini"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the phonebook configuration directory path,
// creating it on first use.
// Linux: ~/.config/phonebook (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\phonebook (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// DefaultPasswordsFile returns the path of the admin ini file inside the
// application directory. It falls back to the working directory when the
// application directory is unavailable.
func DefaultPasswordsFile() string {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return PasswordsFileName
	}

	return filepath.Join(dir, PasswordsFileName)
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)

	if err := os.MkdirAll(appDir, 0o755); err != nil {
		errDir = fmt.Errorf("failed to create config directory %s: %w", appDir, err)
	}
}
