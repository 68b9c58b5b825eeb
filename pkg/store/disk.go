package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Config names the state directory.
type Config interface {
	BasePath() string
}

// Disk is a KV backed by diskv. A key "session-token" is stored as the file
// token under the directory session.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a Disk rooted at cfg.BasePath().
func Open(cfg Config) (*Disk, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unset")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		PathPerm:          0o700,
		FilePerm:          0o600,
	}), basePath: basePath}, nil
}

func (k *Disk) BasePath() string {
	return k.basePath
}

func (k *Disk) Get(key string) (string, bool, error) {
	if !k.d.Has(key) {
		return "", false, nil
	}
	b, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (k *Disk) Set(key, value string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := k.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (k *Disk) Delete(key string) error {
	if !k.d.Has(key) {
		return nil
	}
	if err := k.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (k *Disk) Keys() []string {
	var keys []string
	for key := range k.d.Keys(nil) {
		keys = append(keys, key)
	}
	return keys
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
