// Package save persists player progress between runs.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the save file name inside the data directory.
const FileName = "player.json"

// ErrNoSave is returned by Load when nothing has been saved yet.
var ErrNoSave = errors.New("no save")

// Position is the saved player position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is the persisted part of the player.
type Snapshot struct {
	Position Position `json:"position"`
	Coins    int      `json:"coins"`
}

// Store loads and saves snapshots.
type Store interface {
	Load() (Snapshot, error)
	Save(s Snapshot) error
}

// FileStore keeps the snapshot as JSON in a directory.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store writing to dir/player.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Path returns the save file path.
func (f *FileStore) Path() string {
	return filepath.Join(f.Dir, FileName)
}

// Load reads the snapshot. Returns ErrNoSave if the file does not exist.
func (f *FileStore) Load() (Snapshot, error) {
	var s Snapshot
	data, err := os.ReadFile(f.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return s, ErrNoSave
	}
	if err != nil {
		return s, fmt.Errorf("read save: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse save %s: %w", f.Path(), err)
	}
	return s, nil
}

// Save writes the snapshot, creating the directory if needed.
func (f *FileStore) Save(s Snapshot) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	tmp := f.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, f.Path()); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}
