// Package storage persists named games in a badger key-value store.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Game records live under this key prefix.
const keyPrefix = "game/"

// GameRecord is a stored game: where it started and the SAN moves played
// since. FEN is the position after the last move.
type GameRecord struct {
	Name       string    `json:"name"`
	InitialFEN string    `json:"initial_fen"`
	Moves      []string  `json:"moves"`
	FEN        string    `json:"fen"`
	SavedAt    time.Time `json:"saved_at"`
}

// NewRecord captures the current state of game under name.
func NewRecord(name string, game *engine.Game) *GameRecord {
	history := game.History()
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.SAN
	}
	return &GameRecord{
		Name:       name,
		InitialFEN: game.InitialFEN(),
		Moves:      moves,
		FEN:        game.FEN(),
	}
}

// Restore replays the record into a fresh game.
func (r *GameRecord) Restore(opts ...engine.Option) (*engine.Game, error) {
	g, err := engine.Replay(r.InitialFEN, r.Moves, opts...)
	if err != nil {
		return g, errors.Wrapf(err, "restoring game %q", r.Name)
	}
	return g, nil
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening game store")
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// Save writes rec under its name, replacing any earlier record.
func (s *Storage) Save(rec *GameRecord) error {
	if rec.Name == "" {
		return fmt.Errorf("game record has no name: %w", errors.ErrInvalidConfig)
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.Name), data)
	})
}

// Load reads the record stored under name. It returns an error wrapping
// ErrGameNotFound when there is none.
func (s *Storage) Load(name string) (*GameRecord, error) {
	var rec GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", errors.ErrGameNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record stored under name.
func (s *Storage) Delete(name string) error {
	if _, err := s.Load(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(name))
	})
}

// List returns the names of all stored games in sorted order.
func (s *Storage) List() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}
