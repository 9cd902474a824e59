package application

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// StoreInfo describes an open store without decrypting any record.
type StoreInfo struct {
	Path    string
	Created time.Time
	Version string
	Entries int
}

// Store is an open password database. It holds the ordered list of sealed
// record tokens and the session cipher, never the passphrase. Records are
// decrypted on demand and re-sealed on every write.
//
// A Store is either open or closed. Every method except Closed returns
// driven.ErrStoreClosed after Close. Stores are not safe for concurrent use,
// and nothing prevents two processes from opening the same file.
type Store struct {
	path    string
	created time.Time
	version string
	entries []string

	cipher driven.Cipher
	codec  *RecordCodec
	closed bool
}

func newStore(path string, env model.Envelope, cipher driven.Cipher, text driven.TextCodec) *Store {
	return &Store{
		path:    path,
		created: env.Created,
		version: env.Version,
		entries: env.Entries,
		cipher:  cipher,
		codec:   NewRecordCodec(cipher, text),
	}
}

// Info returns the store's metadata and entry count.
func (s *Store) Info() (StoreInfo, error) {
	if s.closed {
		return StoreInfo{}, driven.ErrStoreClosed
	}
	return StoreInfo{
		Path:    s.path,
		Created: s.created,
		Version: s.version,
		Entries: len(s.entries),
	}, nil
}

// Len returns the number of records.
func (s *Store) Len() (int, error) {
	if s.closed {
		return 0, driven.ErrStoreClosed
	}
	return len(s.entries), nil
}

// Add seals r and appends it. The new record's index is the previous length.
func (s *Store) Add(r model.Record) error {
	if s.closed {
		return driven.ErrStoreClosed
	}
	token, err := s.codec.Seal(r)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	s.entries = append(s.entries, token)
	return nil
}

// Remove deletes the record at index. Later records shift down by one.
func (s *Store) Remove(index int) error {
	if s.closed {
		return driven.ErrStoreClosed
	}
	if err := s.checkIndex("remove", index); err != nil {
		return err
	}
	s.entries = slices.Delete(s.entries, index, index+1)
	return nil
}

// Replace overwrites the record at index with r. Nothing of the previous
// record is kept, so r must carry every field.
func (s *Store) Replace(index int, r model.Record) error {
	if s.closed {
		return driven.ErrStoreClosed
	}
	if err := s.checkIndex("replace", index); err != nil {
		return err
	}
	token, err := s.codec.Seal(r)
	if err != nil {
		return fmt.Errorf("replace entry %d: %w", index, err)
	}
	s.entries[index] = token
	return nil
}

// Get decrypts the record at index.
func (s *Store) Get(index int) (model.Record, error) {
	if s.closed {
		return model.Record{}, driven.ErrStoreClosed
	}
	if err := s.checkIndex("get", index); err != nil {
		return model.Record{}, err
	}
	r, err := s.codec.Open(s.entries[index])
	if err != nil {
		return model.Record{}, fmt.Errorf("open entry %d: %w", index, err)
	}
	return r, nil
}

// List decrypts every record in order. The first record that fails to open
// aborts the listing.
func (s *Store) List() ([]model.Record, error) {
	if s.closed {
		return nil, driven.ErrStoreClosed
	}
	records := make([]model.Record, 0, len(s.entries))
	for i, token := range s.entries {
		r, err := s.codec.Open(token)
		if err != nil {
			return nil, fmt.Errorf("open entry %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Search returns, in index order, every record whose field contains term as a
// case-sensitive substring. No match is an empty result, not an error.
func (s *Store) Search(field model.Field, term string) ([]model.Match, error) {
	if s.closed {
		return nil, driven.ErrStoreClosed
	}
	if term == "" {
		return nil, driven.ErrEmptySearchTerm
	}
	if !field.Valid() {
		return nil, fmt.Errorf("search %q: %w", field, driven.ErrUnknownField)
	}

	records, err := s.List()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches := []model.Match{}
	for i, r := range records {
		if strings.Contains(r.Value(field), term) {
			matches = append(matches, model.Match{Index: i, Record: r})
		}
	}
	return matches, nil
}

// Close discards the session key and the in-memory entries without saving.
func (s *Store) Close() error {
	if s.closed {
		return driven.ErrStoreClosed
	}
	s.cipher.Wipe()
	s.entries = nil
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed
}

// envelope snapshots the store for saving.
func (s *Store) envelope() model.Envelope {
	return model.Envelope{
		Created: s.created,
		Version: s.version,
		Entries: slices.Clone(s.entries),
	}
}

func (s *Store) checkIndex(op string, index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%s entry %d (have %d): %w", op, index, len(s.entries), driven.ErrIndexOutOfRange)
	}
	return nil
}
