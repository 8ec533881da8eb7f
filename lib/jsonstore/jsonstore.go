// Package jsonstore persists each service's output file. Reads never
// fail: a missing or corrupt file yields a fresh value so a scrape
// run can always proceed and rebuild it. Writes go through a temp
// file and a rename so a crash mid-write never leaves a truncated
// file behind.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type Store[T any] struct {
	path  string
	fresh func() *T
}

func New[T any](path string, fresh func() *T) Store[T] {
	return Store[T]{path: path, fresh: fresh}
}

func (s Store[T]) Path() string {
	return s.path
}

func (s Store[T]) Load() *T {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read data file, starting fresh",
				"path", s.path, "err", err)
		}
		return s.fresh()
	}

	out := s.fresh()
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("could not parse data file, starting fresh",
			"path", s.path, "err", err)
		return s.fresh()
	}
	return out
}

func (s Store[T]) Save(value *T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(s.path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
