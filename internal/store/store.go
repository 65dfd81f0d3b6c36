package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/bitreel/internal/domain"
)

// Bucket names
var (
	bucketJobs = []byte("jobs")
)

// HistoryStore implements domain.HistoryStore using BoltDB.
// Keys are the big-endian start time followed by the record ID, so a
// cursor walk is chronological.
type HistoryStore struct {
	db *bolt.DB
	mu sync.Mutex

	// Used instead of db in memory-only mode
	mem []domain.JobRecord
}

var _ domain.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore opens (or creates) the history database at path.
// An empty path keeps records in memory only.
func NewHistoryStore(path string) (*HistoryStore, error) {
	if path == "" {
		return &HistoryStore{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketJobs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores rec, assigning an ID if it has none
func (s *HistoryStore) Save(rec domain.JobRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	if s.db == nil {
		s.mu.Lock()
		s.mem = append(s.mem, rec)
		s.mu.Unlock()
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketJobs).Put(recordKey(rec), data)
	})
}

// Recent returns up to limit records, newest first. limit <= 0 returns all.
func (s *HistoryStore) Recent(limit int) ([]domain.JobRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		var out []domain.JobRecord
		for i := len(s.mem) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, s.mem[i])
		}
		return out, nil
	}

	var out []domain.JobRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJobs)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var rec domain.JobRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				// Skip records written by an incompatible version
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// Clear deletes every stored record
func (s *HistoryStore) Clear() error {
	if s.db == nil {
		s.mu.Lock()
		s.mem = nil
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketJobs); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketJobs)
		return err
	})
}

func recordKey(rec domain.JobRecord) []byte {
	key := make([]byte, 8, 8+len(rec.ID))
	binary.BigEndian.PutUint64(key, uint64(rec.Started.UnixNano()))
	return append(key, rec.ID...)
}
