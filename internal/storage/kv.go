package storage

import "fmt"

// KV is the opaque string store that persists application state.
// Values are JSON documents owned by the caller.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemKV is an in-memory KV, used by tests and throwaway sessions.
type MemKV struct {
	m map[string]string
}

// NewMemKV returns an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{m: make(map[string]string)}
}

func (k *MemKV) Get(key string) (string, bool, error) {
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemKV) Set(key, value string) error {
	k.m[key] = value
	return nil
}

func (k *MemKV) Delete(key string) error {
	delete(k.m, key)
	return nil
}

// Copy moves the listed keys from src to dst and returns how many were
// present. Keys missing from src are deleted from dst.
func Copy(dst, src KV, keys []string) (int, error) {
	n := 0
	for _, key := range keys {
		v, ok, err := src.Get(key)
		if err != nil {
			return n, fmt.Errorf("reading %s: %w", key, err)
		}
		if !ok {
			if err := dst.Delete(key); err != nil {
				return n, fmt.Errorf("deleting %s: %w", key, err)
			}
			continue
		}
		if err := dst.Set(key, v); err != nil {
			return n, fmt.Errorf("writing %s: %w", key, err)
		}
		n++
	}
	return n, nil
}
