package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
)

// Store owns the JSON document on disk. Every mutation runs load-mutate-save
// under the store mutex, so writers never race each other within the process.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *log.Logger
}

// Open prepares the backing file's directory and materializes an empty
// document if the file does not exist yet.
func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path required")
	}
	if logger == nil {
		logger = log.New()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &Store{path: path, logger: logger}
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the live document file.
func (s *Store) Path() string {
	return s.path
}

// View runs fn against a freshly loaded document. The document must not be
// mutated; changes are discarded.
func (s *Store) View(fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn against a freshly loaded document and persists the result.
// If fn returns an error nothing is written.
func (s *Store) Update(fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Bytes returns the raw serialized document, for file-level copies.
func (s *Store) Bytes() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return sonic.ConfigStd.MarshalIndent(doc, "", "  ")
}

// ReplaceBytes overwrites the live document with data, which must parse as a
// document. Missing collections are defaulted before the write.
func (s *Store) ReplaceBytes(data []byte) error {
	var doc domain.Document
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	doc.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&doc)
}

func (s *Store) load() (*domain.Document, error) {
	doc := &domain.Document{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc.Normalize()
			return doc, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(data) > 0 {
		if err := sonic.ConfigStd.Unmarshal(data, doc); err != nil {
			// Keep the unparseable bytes for hand recovery instead of
			// letting the next save overwrite the only copy.
			aside := s.path + ".corrupt"
			if renameErr := os.Rename(s.path, aside); renameErr != nil {
				s.logger.WithError(renameErr).Warnf("failed to set aside corrupt store file %s", s.path)
			}
			s.logger.WithError(err).Warnf("store file %s is unparseable, moved to %s, starting empty", s.path, aside)
			doc = &domain.Document{}
		}
	}
	doc.Normalize()
	return doc, nil
}

// save writes to a temp file, syncs it, renames it over the live file and
// syncs the directory, so a crash mid-write never leaves a torn document.
func (s *Store) save(doc *domain.Document) error {
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := syncFile(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit store: %w", err)
	}
	return syncDir(filepath.Dir(s.path))
}

func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func syncDir(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}
