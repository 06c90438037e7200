// Package history keeps a local record of past analysis runs so partition
// growth can be tracked between invocations. Backed by BadgerDB.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/acksell/ddblens/lens"
)

const keySeparator byte = 0x00

// Record is one stored analysis run.
type Record struct {
	TableName  string                `json:"TableName"`
	RunAt      time.Time             `json:"RunAt"`
	Partitions int64                 `json:"Partitions"`
	Method     lens.EstimationMethod `json:"EstimationMethod"`
	Analysis   lens.Analysis         `json:"Analysis"`
}

// StoreOptions configures the BadgerDB store.
type StoreOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger for BadgerDB. If nil, logging is disabled.
	Logger badger.Logger
}

// Store is the run history database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the history database.
func Open(opts StoreOptions) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)

	if opts.Path == "" || opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithLogger(opts.Logger)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores one run record.
func (s *Store) Put(rec Record) error {
	if rec.TableName == "" {
		return fmt.Errorf("record is missing a table name")
	}
	if rec.RunAt.IsZero() {
		rec.RunAt = time.Now()
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode history record: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(rec.TableName, rec.RunAt), value)
	})
}

// List returns up to limit records for tableName, newest first. A limit of 0
// or less returns all records.
func (s *Store) List(tableName string, limit int) ([]Record, error) {
	prefix := tablePrefix(tableName)

	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the end of the prefix range.
		seek := append(bytes.Clone(prefix), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var rec Record
				if err := json.Unmarshal(value, &rec); err != nil {
					return fmt.Errorf("decode history record: %w", err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Keys order chronologically per table: run\x00<table>\x00<fixed-width nanos>.
func runKey(tableName string, runAt time.Time) []byte {
	return append(tablePrefix(tableName), []byte(fmt.Sprintf("%020d", runAt.UnixNano()))...)
}

func tablePrefix(tableName string) []byte {
	prefix := []byte("run")
	prefix = append(prefix, keySeparator)
	prefix = append(prefix, []byte(tableName)...)
	prefix = append(prefix, keySeparator)
	return prefix
}
