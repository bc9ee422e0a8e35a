package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV keeps every key in one JSON object file. Each write replaces the
// file through a temporary file and rename, so readers never see a torn write.
type FileKV struct {
	path string
	m    map[string]string
}

// OpenFileKV loads the store at path. A missing file is an empty store.
func OpenFileKV(path string) (*FileKV, error) {
	k := &FileKV{path: path, m: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return k, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if len(data) == 0 {
		return k, nil
	}
	if err := json.Unmarshal(data, &k.m); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	if k.m == nil {
		k.m = make(map[string]string)
	}
	return k, nil
}

// Path returns the backing file.
func (k *FileKV) Path() string {
	return k.path
}

func (k *FileKV) Get(key string) (string, bool, error) {
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *FileKV) Set(key, value string) error {
	prev, had := k.m[key]
	k.m[key] = value
	if err := k.flush(); err != nil {
		if had {
			k.m[key] = prev
		} else {
			delete(k.m, key)
		}
		return err
	}
	return nil
}

func (k *FileKV) Delete(key string) error {
	prev, had := k.m[key]
	if !had {
		return nil
	}
	delete(k.m, key)
	if err := k.flush(); err != nil {
		k.m[key] = prev
		return err
	}
	return nil
}

// Close is a no-op; every write is already on disk.
func (k *FileKV) Close() error {
	return nil
}

func (k *FileKV) flush() error {
	data, err := json.MarshalIndent(k.m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(k.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, k.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
