// Package blobstore is the storage medium behind the ledger: a key-value
// store holding whole opaque values. Reads and writes always cover the full
// value; the last Set wins.
package blobstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("blob not found")

// Store reads and replaces whole blobs by key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the backend named by backend, rooted at path.
// path is a directory for the file backend and a database file for sqlite;
// the memory backend ignores it.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close releases the store's resources if it holds any.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("empty blob key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
