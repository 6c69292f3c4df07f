package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshotter is the load/save boundary for studio state.
type Snapshotter interface {
	Load() (State, error)
	Save(State) error
}

// FileSnapshotter keeps state as a JSON document on disk.
type FileSnapshotter struct {
	Path string
}

// Load returns an error wrapping os.ErrNotExist when there is no snapshot yet.
func (f FileSnapshotter) Load() (State, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return State{}, fmt.Errorf("read snapshot: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse snapshot %s: %w", f.Path, err)
	}
	return st, nil
}

// Save writes through a temp file and renames it over the target.
func (f FileSnapshotter) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Open loads a studio from snap, or starts from fallback when no snapshot
// exists yet. A corrupt snapshot is an error, not a silent reset.
func Open(snap Snapshotter, fallback State, opts ...Option) (*Studio, error) {
	st, err := snap.Load()
	switch {
	case err == nil:
		if err := st.Brand.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot brand: %w", err)
		}
		return New(st, opts...), nil
	case errors.Is(err, os.ErrNotExist):
		return New(fallback, opts...), nil
	default:
		return nil, err
	}
}

// Save persists the current state through snap.
func (s *Studio) Save(snap Snapshotter) error {
	return snap.Save(s.Snapshot())
}
