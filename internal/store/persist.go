package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Persistence saves and restores store snapshots between runs, one JSON
// file per store. It is the client's local-storage analog. The training
// cache is deliberately not persisted; it is refetched on demand.
type Persistence struct {
	dir    string
	logger *log.Logger
}

// NewPersistence creates a snapshot store rooted at dir
func NewPersistence(dir string, logger *log.Logger) *Persistence {
	if logger == nil {
		logger = log.Default()
	}
	return &Persistence{dir: dir, logger: logger}
}

// Save writes one named snapshot
func (p *Persistence) Save(name string, snapshot any) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", name, err)
	}

	path := filepath.Join(p.dir, name+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", name, err)
	}
	return nil
}

// Load reads one named snapshot. A missing file returns os.ErrNotExist.
func (p *Persistence) Load(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.dir, name+".json"))
}

// Restorable is a store that can rebuild itself from a snapshot
type Restorable interface {
	Restore(data []byte) error
}

// Restore loads a named snapshot into the store. Missing snapshots are a
// no-op; corrupt ones are logged and discarded rather than failing start.
func (p *Persistence) Restore(name string, target Restorable) {
	data, err := p.Load(name)
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("reading snapshot failed", "name", name, "error", err)
		}
		return
	}
	if err := target.Restore(data); err != nil {
		p.logger.Warn("restoring snapshot failed", "name", name, "error", err)
	}
}

// unmarshalSnapshot decodes a snapshot payload
func unmarshalSnapshot(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return nil
}
