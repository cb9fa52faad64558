package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/akosenkov/lapsus/internal/model"
)

const completionsBucket = "completions"

// BoltStore is the default completion ledger, one bbolt file with a
// single bucket of date-keyed JSON records.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if needed) the bolt-backed store at path. The
// one-second lock timeout turns a concurrent second process into an error
// instead of a hang.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(completionsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create completions bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(date model.Date) (model.CompletionRecord, bool, error) {
	var rec model.CompletionRecord
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket))
		if bucket == nil {
			return fmt.Errorf("completions bucket is missing")
		}
		payload := bucket.Get([]byte(date.String()))
		if payload == nil {
			return nil
		}
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("unmarshal record %s: %w", date, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return model.CompletionRecord{}, false, err
	}
	return rec, found, nil
}

func (s *BoltStore) Put(date model.Date, rec model.CompletionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket))
		if bucket == nil {
			return fmt.Errorf("completions bucket is missing")
		}
		key := []byte(date.String())
		if bucket.Get(key) != nil {
			return fmt.Errorf("%s: %w", date, ErrAlreadyRecorded)
		}
		return bucket.Put(key, payload)
	})
}

func (s *BoltStore) Dates() ([]model.Date, error) {
	var dates []model.Date

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(completionsBucket))
		if bucket == nil {
			return fmt.Errorf("completions bucket is missing")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			d, err := model.ParseDate(string(k))
			if err != nil {
				return fmt.Errorf("corrupt date key %q: %w", k, err)
			}
			dates = append(dates, d)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// Bolt iterates keys in byte order, which for ISO dates is already
	// chronological; sort anyway so the contract does not rest on the
	// key format.
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
