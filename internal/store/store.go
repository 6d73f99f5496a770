// Package store persists the gptcli Settings record in an embedded bbolt
// database. The database is opened for each Load and each Save and closed
// again, so no handle is held while a request is in flight.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pbrown/gptcli/internal/apperr"
	"github.com/pbrown/gptcli/internal/models"
)

const (
	// DefaultOpenTimeout bounds how long Load/Save wait for another process
	// holding the database lock.
	DefaultOpenTimeout = 2 * time.Second

	// FileName is the database file inside the data directory.
	FileName = "settings.db"
)

var (
	bucketName = []byte("gptcli")
	recordKey  = []byte("config")
)

// Store reads and writes the single Settings blob.
type Store struct {
	path        string
	openTimeout time.Duration
}

// New creates a store backed by the database file at path.
func New(path string) *Store {
	return &Store{
		path:        path,
		openTimeout: DefaultOpenTimeout,
	}
}

// InDir creates a store at <dir>/settings.db.
func InDir(dir string) *Store {
	return New(filepath.Join(dir, FileName))
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored Settings, or defaults if nothing was stored yet.
// Any failure to open or decode the database is a StoreUnavailable error.
func (s *Store) Load() (*models.Settings, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.NewSettings(), nil
		}
		return nil, apperr.StoreUnavailable("cannot stat "+s.path, err)
	}
	// A zero-byte file is what an interrupted first Save leaves behind.
	// The next Save initialises it.
	if info.Size() == 0 {
		return models.NewSettings(), nil
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.openTimeout, ReadOnly: true})
	if err != nil {
		return nil, apperr.StoreUnavailable("cannot open "+s.path, err)
	}
	defer db.Close()

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		// Get's slice is only valid inside the transaction
		if v := b.Get(recordKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.StoreUnavailable("cannot read settings", err)
	}
	if data == nil {
		return models.NewSettings(), nil
	}

	settings := models.NewSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, apperr.StoreUnavailable("stored settings are corrupt", err)
	}
	return settings, nil
}

// Save replaces the stored record with settings. bbolt commits are atomic
// and fsync'd, so a later Load sees either the old or the new record.
func (s *Store) Save(settings *models.Settings) error {
	if settings == nil {
		return apperr.StoreUnavailable("nil settings", nil)
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return apperr.StoreUnavailable("cannot encode settings", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperr.StoreUnavailable("cannot create directory for "+s.path, err)
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.openTimeout})
	if err != nil {
		return apperr.StoreUnavailable("cannot open "+s.path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put(recordKey, data)
	})
	if err != nil {
		db.Close()
		return apperr.StoreUnavailable("cannot write settings", err)
	}

	if err := db.Close(); err != nil {
		return apperr.StoreUnavailable("cannot close "+s.path, err)
	}
	return nil
}
