// Package backup keeps timestamped copies of the store document and can roll
// the live document back to any of them.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
	"taskboard-api/storage"
)

const (
	backupPrefix = "backup-"
	backupSuffix = ".json"
	timeLayout   = "20060102-150405"
)

// DefaultRetention is how many backup files survive pruning.
const DefaultRetention = 7

// Manager copies the live document into dir and prunes old copies.
type Manager struct {
	store     *storage.Store
	dir       string
	retention int
	logger    *log.Logger

	now func() time.Time
}

// Info describes one backup file, newest first in listings.
type Info struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func NewManager(store *storage.Store, dir string, retention int, logger *log.Logger) (*Manager, error) {
	if dir == "" {
		return nil, fmt.Errorf("backup dir required")
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = log.New()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &Manager{store: store, dir: dir, retention: retention, logger: logger, now: time.Now}, nil
}

// Create snapshots the live document to a second-precision timestamped file
// and prunes everything but the newest retention copies.
func (m *Manager) Create() (string, error) {
	data, err := m.store.Bytes()
	if err != nil {
		return "", fmt.Errorf("snapshot store: %w", err)
	}
	name := backupPrefix + m.now().Format(timeLayout) + backupSuffix
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	m.prune()
	m.logger.WithField("backup", name).Info("backup created")
	return name, nil
}

// List returns every backup file newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{Name: e.Name(), Size: fi.Size(), ModifiedAt: fi.ModTime()})
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].ModifiedAt.Equal(infos[j].ModifiedAt) {
			return infos[i].Name > infos[j].Name
		}
		return infos[i].ModifiedAt.After(infos[j].ModifiedAt)
	})
	return infos, nil
}

// Restore replaces the live document with the named backup's contents,
// snapshotting the pre-restore state first so the operation itself is
// recoverable.
func (m *Manager) Restore(name string) error {
	if !isBackupName(name) || name != filepath.Base(name) {
		return domain.NotFoundError{Kind: "backup", ID: name}
	}
	// Read before snapshotting: the snapshot's prune could evict the very
	// file being restored when the directory is at retention capacity.
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NotFoundError{Kind: "backup", ID: name}
		}
		return fmt.Errorf("read backup: %w", err)
	}

	if _, err := m.Create(); err != nil {
		return fmt.Errorf("pre-restore snapshot: %w", err)
	}
	if err := m.store.ReplaceBytes(data); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	m.logger.WithField("backup", name).Info("backup restored")
	return nil
}

// prune deletes all but the retention most-recently-modified backups.
// Failures are logged only: pruning must never fail a live request.
func (m *Manager) prune() {
	infos, err := m.List()
	if err != nil {
		m.logger.WithError(err).Warn("backup prune skipped")
		return
	}
	for _, old := range infos[min(len(infos), m.retention):] {
		if err := os.Remove(filepath.Join(m.dir, old.Name)); err != nil {
			m.logger.WithError(err).Warnf("failed to prune backup %s", old.Name)
		}
	}
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix)
}

// Schedule takes one backup immediately, then one at the next local midnight
// and every 24 hours after that, until ctx is canceled. Failures are logged
// and swallowed so the timer can never take down request handling.
func (m *Manager) Schedule(ctx context.Context) {
	go func() {
		if _, err := m.Create(); err != nil {
			m.logger.WithError(err).Warn("startup backup failed")
		}
		timer := time.NewTimer(untilNextMidnight(m.now()))
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				if _, err := m.Create(); err != nil {
					m.logger.WithError(err).Warn("scheduled backup failed")
				}
				timer.Reset(24 * time.Hour)
			}
		}
	}()
}

func untilNextMidnight(now time.Time) time.Duration {
	y, mo, d := now.Date()
	next := time.Date(y, mo, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
