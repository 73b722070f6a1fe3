// Package datadir manages the on-disk directory that holds unit tables and
// conversion history.
package datadir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	appName      = "unitconv"
	lockFile     = ".lock"
	lockInterval = 50 * time.Millisecond
)

// Default returns the default data directory, $XDG_CONFIG_HOME/unitconv or
// the platform equivalent.
func Default() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Ensure creates dir if it does not exist.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}

// Lock takes an exclusive advisory lock on dir. The returned function
// releases it.
func Lock(ctx context.Context, dir string) (func() error, error) {
	if err := Ensure(dir); err != nil {
		return nil, err
	}

	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLockContext(ctx, lockInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to lock data directory %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock data directory %s", dir)
	}
	return fl.Unlock, nil
}

// ReadJSON decodes the JSON file at path into v. It returns an error
// satisfying errors.Is(err, fs.ErrNotExist) when the file is missing.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s is corrupted: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadJSONOrDefault decodes path into v, falling back to def when the file
// does not exist. The default is written to path so the user can edit it.
func ReadJSONOrDefault(path string, def []byte, v any) error {
	err := ReadJSON(path, v)
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := json.Unmarshal(def, v); err != nil {
		return fmt.Errorf("invalid default for %s: %w", filepath.Base(path), err)
	}
	if err := Ensure(filepath.Dir(path)); err != nil {
		return err
	}
	return writeFile(path, def)
}

// WriteJSON encodes v as indented JSON and atomically replaces path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
