package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// KeyValueStore is the persistence capability the app runs on. Values are
// opaque strings; this package stores JSON snapshots in them.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	RemoveAll(keys ...string) error
}

// batchSetter is implemented by stores that can write several keys in one
// transaction.
type batchSetter interface {
	SetAll(values map[string]string) error
}

func loadJSON(store KeyValueStore, key string, target any) (bool, error) {
	raw, found, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(store KeyValueStore, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(key, string(encoded)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

type storedValue struct {
	raw   string
	found bool
}

// saveAllJSON writes every value or none of them. Stores without SetAll get
// the previous values put back when a later write fails.
func saveAllJSON(store KeyValueStore, values map[string]any) error {
	encoded := make(map[string]string, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		encoded[key] = string(raw)
	}

	if batch, ok := store.(batchSetter); ok {
		if err := batch.SetAll(encoded); err != nil {
			return fmt.Errorf("set batch: %w", err)
		}
		return nil
	}

	keys := make([]string, 0, len(encoded))
	for key := range encoded {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	previous := make(map[string]storedValue, len(keys))
	for _, key := range keys {
		raw, found, err := store.Get(key)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		previous[key] = storedValue{raw: raw, found: found}
	}

	for index, key := range keys {
		if err := store.Set(key, encoded[key]); err != nil {
			writeErr := fmt.Errorf("set %s: %w", key, err)
			return errors.Join(writeErr, restoreValues(store, keys[:index], previous))
		}
	}
	return nil
}

func restoreValues(store KeyValueStore, keys []string, previous map[string]storedValue) error {
	var restoreErrs []error
	var absent []string
	for _, key := range keys {
		value := previous[key]
		if !value.found {
			absent = append(absent, key)
			continue
		}
		if err := store.Set(key, value.raw); err != nil {
			restoreErrs = append(restoreErrs, fmt.Errorf("restore %s: %w", key, err))
		}
	}
	if len(absent) > 0 {
		if err := store.RemoveAll(absent...); err != nil {
			restoreErrs = append(restoreErrs, fmt.Errorf("restore %v: %w", absent, err))
		}
	}
	return errors.Join(restoreErrs...)
}
