// Package trace records contact frames to disk and replays them through
// the gesture engine for deterministic threshold tuning.
package trace

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/frudas24/touchwave/gesture"
)

// Contact-frame operations, matching the transport wire values.
const (
	OpBegin  = "begin"
	OpMove   = "move"
	OpEnd    = "end"
	OpCancel = "cancel"
)

// Frame is one recorded contact notification. At is the frame's position
// on the interaction timeline in milliseconds; end and cancel frames carry
// no points, so the writer stamps them with the last known point time.
type Frame struct {
	Op     string                 `json:"op"`
	At     int64                  `json:"at"`
	Points []gesture.ContactPoint `json:"points,omitempty"`
}

// Store appends contact frames to a badger database, one ordered stream
// per trace ID.
type Store struct {
	db *badger.DB

	mu   sync.Mutex
	seqs map[string]uint64
}

// Open opens the trace store at dir, creating it when missing.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open trace store: %w", err)
	}
	return &Store{db: db, seqs: make(map[string]uint64)}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one frame at the end of the trace's stream.
func (s *Store) Append(traceID string, f Frame) error {
	s.mu.Lock()
	seq := s.seqs[traceID]
	s.seqs[traceID] = seq + 1
	s.mu.Unlock()

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(frameKey(traceID, seq), data)
	})
}

// Read returns every frame of the trace in append order. An unknown trace
// yields an empty slice.
func (s *Store) Read(traceID string) ([]Frame, error) {
	prefix := []byte(keyPrefix + traceID + "/")
	var frames []Frame
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var f Frame
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &f)
			})
			if err != nil {
				return fmt.Errorf("decode frame %s: %w", it.Item().Key(), err)
			}
			frames = append(frames, f)
		}
		return nil
	})
	return frames, err
}

// List returns the stored trace IDs in sorted order.
func (s *Store) List() ([]string, error) {
	seen := map[string]struct{}{}
	prefix := []byte(keyPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), keyPrefix)
			if id, _, ok := strings.Cut(rest, "/"); ok {
				seen[id] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

const keyPrefix = "trace/"

// frameKey builds the ordered key for one frame of a trace.
func frameKey(traceID string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%012d", keyPrefix, traceID, seq))
}
