// Package perftdb persists verified perft results.
package perftdb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned by Get when no result is stored for a position
// and depth.
var ErrNotFound = errors.New("perftdb: record not found")

var keyPrefix = []byte("perft/")

// Record is one perft result. FEN should be canonical, as produced by
// notation.FormatFEN, so equal positions share a key.
type Record struct {
	FEN        string        `json:"fen"`
	Depth      int           `json:"depth"`
	Nodes      uint64        `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	Label      string        `json:"label,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Store wraps BadgerDB for perft results
type Store struct {
	db *badger.DB
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory returns a store that is discarded on Close.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts.Logger = nil // Disable logging
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("perftdb: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// key is the prefix, the xxhash of the FEN and the depth.
func key(fen string, depth int) []byte {
	k := make([]byte, len(keyPrefix)+9)
	n := copy(k, keyPrefix)
	binary.BigEndian.PutUint64(k[n:], xxhash.Sum64String(fen))
	k[n+8] = byte(depth)
	return k
}

// Put stores r, replacing any previous result for the same FEN and depth.
func (s *Store) Put(r Record) error {
	if r.Depth < 0 || r.Depth > 255 {
		return fmt.Errorf("perftdb: depth %d out of range", r.Depth)
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(r.FEN, r.Depth), data)
	})
}

// Get loads the result for fen at depth. A stored record whose FEN differs
// (a hash collision) is reported as ErrNotFound.
func (s *Store) Get(fen string, depth int) (Record, error) {
	var r Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(fen, depth))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return Record{}, err
	}
	if r.FEN != fen || r.Depth != depth {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// List returns every stored record in key order.
func (s *Store) List() ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			var r Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}
