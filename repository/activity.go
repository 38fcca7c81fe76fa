package repository

import (
	"sort"

	"taskboard-api/domain"
)

// ActivityEntry is an activity record annotated with a human-relative age,
// computed at render time.
type ActivityEntry struct {
	domain.Activity
	Age string `json:"age"`
}

// ListActivitiesByBoard returns the board's activity log newest first.
func (r *Repository) ListActivitiesByBoard(boardID string) ([]ActivityEntry, error) {
	var entries []ActivityEntry
	now := r.now()
	err := r.store.View(func(doc *domain.Document) error {
		if doc.FindBoard(boardID) == nil {
			return domain.NotFoundError{Kind: "board", ID: boardID}
		}
		for _, a := range doc.Activities {
			if a.BoardID == boardID {
				entries = append(entries, ActivityEntry{
					Activity: a,
					Age:      domain.RelativeAge(now, a.Timestamp),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return entries, nil
}
