package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/inovacc/phonebook/internal/application"
	"github.com/inovacc/phonebook/internal/model"
)

// Store defines the settings operations used by the app.
type Store interface {
	Ping() error
	GetConfig() (*model.Config, error)
	SaveConfig(cfg *model.Config) error
	HasConfig() (bool, error)
	Close() error
}

var (
	once  sync.Once
	db    Store
	dbErr error
)

// GetDB returns the initialized settings store, opening it on first use.
func GetDB() (Store, error) {
	once.Do(lazyInit)

	return db, dbErr
}

func lazyInit() {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		dbErr = err
		return
	}

	instance, err := NewBolt(filepath.Join(dir, application.SettingsFileName))
	if err != nil {
		dbErr = fmt.Errorf("failed to open settings store: %w", err)
		return
	}

	_ = instance.Ping()
	db = instance
}
