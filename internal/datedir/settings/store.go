package settings

import (
	"io"
	"log/slog"

	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/storage"
	"github.com/example/datedir/internal/datedir/validator"
)

// Store handles settings persistence and retrieval operations.
type Store struct {
	storage   *storage.Storage
	validator *validator.Validator
	path      string
	defaults  Record
	logger    *slog.Logger
}

// NewStore creates a new settings Store persisting to path. defaults is written through on the
// first Load when nothing has been persisted yet.
func NewStore(storage *storage.Storage, validator *validator.Validator, path string, defaults Record, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		storage:   storage,
		validator: validator,
		path:      path,
		defaults:  defaults,
		logger:    logger,
	}
}

// Path returns the location Load reads and Save writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record.
//
// When no record has been persisted the defaults are written through immediately and
// returned. The defaults are not path-validated here: a machine without a desktop directory
// must still be able to start and fix its settings afterwards.
func (s *Store) Load() (Record, error) {
	exists, err := s.storage.Exists(s.path)
	if err != nil {
		return Record{}, domain.Configuration("cannot inspect settings file", err)
	}
	if !exists {
		if err := s.persist(s.defaults); err != nil {
			return Record{}, err
		}
		s.logger.Info("settings initialised with defaults",
			"path", s.path,
			"folder_path", s.defaults.FolderPath)
		return s.defaults, nil
	}

	data, err := s.storage.ReadFile(s.path)
	if err != nil {
		return Record{}, domain.Configuration("cannot read settings file", err)
	}
	rec, err := Decode(data)
	if err != nil {
		return Record{}, domain.Configuration("settings file is malformed", err)
	}
	return rec, nil
}

// Save validates rec.FolderPath and persists the record atomically. Validation errors are
// returned unchanged; write failures are Configuration errors.
func (s *Store) Save(rec Record) error {
	if !rec.DateFormat.Valid() {
		return domain.Configuration("unsupported date format "+rec.DateFormat.String(), nil)
	}
	if err := s.validator.ValidatePath(rec.FolderPath); err != nil {
		return err
	}
	if err := s.persist(rec); err != nil {
		return err
	}
	s.logger.Info("settings saved",
		"path", s.path,
		"folder_path", rec.FolderPath,
		"date_format", rec.DateFormat.String())
	return nil
}

func (s *Store) persist(rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return domain.Configuration("cannot serialise settings", err)
	}
	if err := s.storage.WriteFileAtomic(s.path, data); err != nil {
		return domain.Configuration("cannot write settings file", err)
	}
	return nil
}
