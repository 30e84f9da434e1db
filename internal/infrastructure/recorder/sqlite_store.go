package recorder

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// SQLiteStore persists transaction and repair events in a SQLite database.
// When the database cannot be opened it degrades to the JSONL file store in
// the same directory.
type SQLiteStore struct {
	db       *sql.DB
	dir      string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) dir/transactions.db (defaults to
// ~/.intentshell/transactions).
func NewSQLiteStore(dir string) *SQLiteStore {
	if dir == "" {
		dir = filepath.Join(userHome(), ".intentshell", "transactions")
	}
	store := &SQLiteStore{dir: dir, fallback: NewFileStore(dir)}
	_ = os.MkdirAll(dir, 0o755)
	db, err := sql.Open("sqlite", filepath.Join(dir, "transactions.db"))
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		stage TEXT,
		input TEXT,
		action_id TEXT,
		handler_id TEXT,
		confidence REAL,
		success INTEGER,
		entities TEXT,
		error_kind TEXT,
		retry_count INTEGER,
		message TEXT
	);
	CREATE TABLE IF NOT EXISTS repairs (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		original_input TEXT,
		original_action TEXT,
		error_kind TEXT,
		error_message TEXT,
		suggested_input TEXT,
		accepted INTEGER,
		retry_count INTEGER
	);`)
	return err
}

// Record implements ports.TransactionRecorder.
func (s *SQLiteStore) Record(event domain.TransactionEvent) error {
	if s.db == nil {
		return s.fallback.Record(event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entities := ""
	if len(event.Entities) > 0 {
		if raw, err := json.Marshal(event.Entities); err == nil {
			entities = string(raw)
		}
	}
	_, err := s.db.Exec(`INSERT INTO transactions
		(id, timestamp, stage, input, action_id, handler_id, confidence, success, entities, error_kind, retry_count, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Timestamp.Format(time.RFC3339Nano),
		string(event.Stage),
		event.Input,
		event.ActionID,
		event.HandlerID,
		event.Confidence,
		boolToInt(event.Success),
		entities,
		string(event.ErrorKind),
		event.RetryCount,
		event.Message,
	)
	return err
}

// RecordRepair implements ports.TransactionRecorder.
func (s *SQLiteStore) RecordRepair(event domain.RepairEvent) error {
	if s.db == nil {
		return s.fallback.RecordRepair(event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO repairs
		(id, timestamp, original_input, original_action, error_kind, error_message, suggested_input, accepted, retry_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Timestamp.Format(time.RFC3339Nano),
		event.OriginalInput,
		event.OriginalAction,
		string(event.ErrorKind),
		event.ErrorMessage,
		event.SuggestedInput,
		boolToInt(event.Accepted),
		event.RetryCount,
	)
	return err
}

// Recent returns up to limit transaction events, newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.TransactionEvent, error) {
	if s.db == nil {
		return s.fallback.Recent(limit)
	}
	query := `SELECT id, timestamp, stage, input, action_id, handler_id, confidence, success, entities, error_kind, retry_count, message
		FROM transactions ORDER BY datetime(timestamp) DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []domain.TransactionEvent
	for rows.Next() {
		var event domain.TransactionEvent
		var ts, stage, kind, entities string
		var success int
		if err := rows.Scan(&event.ID, &ts, &stage, &event.Input, &event.ActionID, &event.HandlerID,
			&event.Confidence, &success, &entities, &kind, &event.RetryCount, &event.Message); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			event.Timestamp = t
		}
		event.Stage = domain.TransactionStage(stage)
		event.ErrorKind = domain.ErrorKind(kind)
		event.Success = success == 1
		if entities != "" {
			_ = json.Unmarshal([]byte(entities), &event.Entities)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the store directory.
func (s *SQLiteStore) Path() string {
	return s.dir
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.TransactionRecorder = (*SQLiteStore)(nil)
