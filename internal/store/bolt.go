package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/inovacc/phonebook/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketConfig = "config" // key: "config" -> Config JSON
	boltKeyConfig    = "config"
)

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a Bolt settings database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketConfig))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

// GetConfig returns the stored configuration, or the defaults when nothing
// has been saved yet.
func (b *Bolt) GetConfig() (*model.Config, error) {
	var cfg *model.Config

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketConfig))
		v := bucket.Get([]byte(boltKeyConfig))

		if v == nil {
			defaultCfg := model.DefaultConfig()
			cfg = &defaultCfg

			return nil
		}

		var c model.Config
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}

		cfg = &c

		return nil
	})

	return cfg, err
}

func (b *Bolt) HasConfig() (bool, error) {
	var exists bool

	err := b.storage.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket([]byte(boltBucketConfig)).Get([]byte(boltKeyConfig)) != nil

		return nil
	})

	return exists, err
}

func (b *Bolt) SaveConfig(cfg *model.Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketConfig)).Put([]byte(boltKeyConfig), data)
	})
}
