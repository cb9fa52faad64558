package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/akosenkov/lapsus/internal/model"
)

// FileStore keeps the whole ledger in one human-readable JSON document,
// rewritten on every Put. At one record per day that stays small forever;
// the backend exists for people who want their history greppable or
// syncable as plain text.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile opens (creating the directory for, if needed) a file-backed
// store at path.
func OpenFile(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s := &FileStore{path: cleanPath}
	// Fail now, not on first Put, if the existing file is unreadable.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Get(date model.Date) (model.CompletionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return model.CompletionRecord{}, false, err
	}
	rec, ok := records[date.String()]
	return rec, ok, nil
}

func (s *FileStore) Put(date model.Date, rec model.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	key := date.String()
	if _, ok := records[key]; ok {
		return fmt.Errorf("%s: %w", date, ErrAlreadyRecorded)
	}
	records[key] = rec
	return s.save(records)
}

func (s *FileStore) Dates() ([]model.Date, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	dates := make([]model.Date, 0, len(records))
	for key := range records {
		d, err := model.ParseDate(key)
		if err != nil {
			return nil, fmt.Errorf("corrupt date key %q: %w", key, err)
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() (map[string]model.CompletionRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]model.CompletionRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	records := make(map[string]model.CompletionRecord)
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.path, err)
	}
	return records, nil
}

// save writes via a temp file and rename so a crash mid-write cannot
// truncate existing history.
func (s *FileStore) save(records map[string]model.CompletionRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
