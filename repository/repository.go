// Package repository implements every operation the HTTP surface exposes:
// board, task, subtask and note CRUD, derived stats, the activity feed and
// whole-document export/import. All mutations run through the store's
// single-writer Update, and every cascade lives here so no call site can
// forget one.
package repository

import (
	"time"

	"github.com/google/uuid"

	"taskboard-api/storage"
)

type Repository struct {
	store *storage.Store

	// overridable in tests
	now   func() time.Time
	newID func() string
}

func New(store *storage.Store) *Repository {
	return &Repository{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}
