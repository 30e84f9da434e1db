// Package recorder persists transaction and repair events. The primary
// backend is SQLite; a JSONL file store serves as the fallback when the
// database cannot be opened, so recording never becomes a hard dependency.
package recorder

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// FileStore appends events to JSONL files under a directory:
// transactions.jsonl for pipeline events, repairs.jsonl for repair attempts.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir (defaults to
// ~/.intentshell/transactions).
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = filepath.Join(userHome(), ".intentshell", "transactions")
	}
	return &FileStore{dir: dir}
}

// Record implements ports.TransactionRecorder.
func (f *FileStore) Record(event domain.TransactionEvent) error {
	return f.appendJSON("transactions.jsonl", event)
}

// RecordRepair implements ports.TransactionRecorder.
func (f *FileStore) RecordRepair(event domain.RepairEvent) error {
	return f.appendJSON("repairs.jsonl", event)
}

// Recent returns up to limit transaction events, newest first.
func (f *FileStore) Recent(limit int) ([]domain.TransactionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(f.dir, "transactions.jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var events []domain.TransactionEvent
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) == 0 {
			continue
		}
		var event domain.TransactionEvent
		if err := json.Unmarshal(lines[i], &event); err != nil {
			continue
		}
		events = append(events, event)
		if limit > 0 && len(events) >= limit {
			break
		}
	}
	return events, nil
}

// Close implements ports.TransactionRecorder.
func (f *FileStore) Close() error { return nil }

// Path returns the backing directory.
func (f *FileStore) Path() string {
	return f.dir
}

func (f *FileStore) appendJSON(name string, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(filepath.Join(f.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.TransactionRecorder = (*FileStore)(nil)
