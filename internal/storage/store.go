package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	coversBucket   = []byte("covers")
	searchesBucket = []byte("searches")
)

// Store is a small bbolt-backed cache: raw cover bytes keyed by manga id
// and file name, plus the recent search history.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{coversBucket, searchesBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func coverKey(mangaID, fileName string) []byte {
	return []byte(mangaID + "/" + fileName)
}

// SaveCover stores raw cover bytes for later searches.
func (s *Store) SaveCover(mangaID, fileName string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("refusing to cache empty cover for %s", mangaID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(coversBucket)
		return b.Put(coverKey(mangaID, fileName), data)
	})
}

// GetCover returns the cached cover bytes, or nil when the cover has not
// been cached yet.
func (s *Store) GetCover(mangaID, fileName string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(coversBucket)
		if v := b.Get(coverKey(mangaID, fileName)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, err
}

// RecordSearch bumps the history entry for a query.
func (s *Store) RecordSearch(query string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(searchesBucket)

		record := SearchRecord{Query: query}
		if v := b.Get([]byte(query)); v != nil {
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
		}
		record.Count++
		record.LastUsed = time.Now()

		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(query), data)
	})
}

// RecentSearches returns up to limit queries, most recently used first.
func (s *Store) RecentSearches(limit int) ([]SearchRecord, error) {
	var records []SearchRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(searchesBucket)
		return b.ForEach(func(_ []byte, v []byte) error {
			var record SearchRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].LastUsed.After(records[j].LastUsed)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
