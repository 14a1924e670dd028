// Package jsonfile implements the Menu and Order stores on top of flat JSON
// files, each holding a single top-level array.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readArray loads a JSON array from path. A missing or blank file is an empty
// collection; anything that does not decode as an array is an error.
func readArray[T any](path string) ([]T, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %q: %w", path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %q: %w", path, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// writeArray replaces path with the indented encoding of v. The data is
// written to a temporary file in the same directory and renamed over the
// target, so readers observe either the old or the new contents.
func writeArray[T any](path string, v []T) (err error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp for %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: write %q: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: sync %q: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close %q: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("jsonfile: replace %q: %w", path, err)
	}
	return nil
}
