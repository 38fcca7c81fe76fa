package repository

import (
	"sort"
	"strings"

	"taskboard-api/domain"
)

// ListNotesByTask returns the task's notes newest first.
func (r *Repository) ListNotesByTask(taskID string) ([]domain.Note, error) {
	var notes []domain.Note
	err := r.store.View(func(doc *domain.Document) error {
		if doc.FindTask(taskID) == nil {
			return domain.NotFoundError{Kind: "task", ID: taskID}
		}
		for _, n := range doc.Notes {
			if n.TaskID == taskID {
				notes = append(notes, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

func (r *Repository) CreateNote(taskID, text string) (domain.Note, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Note{}, domain.Validationf("note text is required")
	}

	var created domain.Note
	err := r.store.Update(func(doc *domain.Document) error {
		if doc.FindTask(taskID) == nil {
			return domain.NotFoundError{Kind: "task", ID: taskID}
		}
		created = domain.Note{
			ID:        r.newID(),
			TaskID:    taskID,
			Note:      text,
			CreatedAt: r.now(),
		}
		doc.Notes = append(doc.Notes, created)
		return nil
	})
	if err != nil {
		return domain.Note{}, err
	}
	return created, nil
}

func (r *Repository) DeleteNote(id string) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i, n := range doc.Notes {
			if n.ID == id {
				doc.Notes = append(doc.Notes[:i], doc.Notes[i+1:]...)
				return nil
			}
		}
		return domain.NotFoundError{Kind: "note", ID: id}
	})
}
