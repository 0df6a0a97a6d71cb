// Package store persists customer records as a single JSON array file,
// the authoritative state of the system. Every mutation rewrites the
// whole snapshot through a temp file plus rename, so a crash mid-write
// never leaves a previously valid file truncated.
//
// The discipline is last-writer-wins with no locking: the system is
// single-user by contract. Multi-process deployments need file locking
// or a real datastore.
package store

import (
	"encoding/json"
	"log/slog"
	"os"

	"xavier-bank/internal/errors"
)

type Store struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the location of the snapshot file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full snapshot. A missing file is a normal first run
// and yields an empty list with no error; a file that exists but does
// not parse yields an empty list plus a storage error so the caller can
// surface it without crashing.
func (s *Store) Load() ([]CustomerRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []CustomerRecord{}, nil
		}
		s.logger.Error("Failed to open customer database", "path", s.path, "error", err)
		return []CustomerRecord{}, errors.ErrStorageUnavailable.WithDetails(err.Error())
	}
	defer f.Close()

	var records []CustomerRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		s.logger.Error("Customer database is corrupt", "path", s.path, "error", err)
		return []CustomerRecord{}, errors.ErrStorageUnavailable.WithDetails(err.Error())
	}
	if records == nil {
		records = []CustomerRecord{}
	}
	return records, nil
}

// Append reloads the current contents, appends the record and rewrites
// the snapshot. Concurrent external modification between reload and
// write goes undetected; single-user assumption.
func (s *Store) Append(record CustomerRecord) error {
	records, _ := s.Load()
	records = append(records, record)
	if err := s.write(records); err != nil {
		return err
	}
	s.logger.Info("Customer record appended", "cpf", record.CPF, "total", len(records))
	return nil
}

// Update replaces the first record whose CPF matches. A missing key is
// not an error: the list is left unchanged but the file is still
// rewritten, which is the store's documented contract.
func (s *Store) Update(record CustomerRecord) error {
	records, _ := s.Load()
	matched := false
	for i := range records {
		if records[i].CPF == record.CPF {
			records[i] = record
			matched = true
			break
		}
	}
	if err := s.write(records); err != nil {
		return err
	}
	if !matched {
		s.logger.Warn("Update matched no record", "cpf", record.CPF)
	}
	return nil
}

// Delete removes the record at the given position and rewrites.
func (s *Store) Delete(index int) error {
	records, _ := s.Load()
	if index < 0 || index >= len(records) {
		return errors.ErrCustomerNotFound
	}
	cpf := records[index].CPF
	records = append(records[:index], records[index+1:]...)
	if err := s.write(records); err != nil {
		return err
	}
	s.logger.Info("Customer record deleted", "cpf", cpf, "remaining", len(records))
	return nil
}

// write serializes the full snapshot to a temp file and renames it over
// the real one.
func (s *Store) write(records []CustomerRecord) error {
	tmp := s.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		s.logger.Error("Failed to create temp snapshot", "path", tmp, "error", err)
		return errors.ErrStorageUnavailable.WithDetails(err.Error())
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		os.Remove(tmp)
		s.logger.Error("Failed to encode snapshot", "error", err)
		return errors.ErrStorageUnavailable.WithDetails(err.Error())
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.ErrStorageUnavailable.WithDetails(err.Error())
	}

	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("Failed to replace snapshot", "path", s.path, "error", err)
		return errors.ErrStorageUnavailable.WithDetails(err.Error())
	}
	return nil
}
