package repository

import (
	"strings"

	"taskboard-api/domain"
)

// AddColumn inserts a column at position, clamped to the column list's
// bounds; a nil position appends.
func (r *Repository) AddColumn(boardID, name string, position *int) (domain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Board{}, domain.Validationf("column name is required")
	}

	var updated domain.Board
	err := r.store.Update(func(doc *domain.Document) error {
		board := doc.FindBoard(boardID)
		if board == nil {
			return domain.NotFoundError{Kind: "board", ID: boardID}
		}
		if board.HasColumn(name) {
			return domain.Validationf("duplicate column %q", name)
		}

		idx := len(board.Columns)
		if position != nil {
			idx = *position
			if idx < 0 {
				idx = 0
			}
			if idx > len(board.Columns) {
				idx = len(board.Columns)
			}
		}
		columns := make([]string, 0, len(board.Columns)+1)
		columns = append(columns, board.Columns[:idx]...)
		columns = append(columns, name)
		columns = append(columns, board.Columns[idx:]...)
		board.Columns = columns
		board.UpdatedAt = r.now()
		updated = *board
		return nil
	})
	if err != nil {
		return domain.Board{}, err
	}
	return updated, nil
}

// DeleteColumn removes the column and deletes every task sitting in it,
// notes included. Tasks are not reassigned; callers are warned in the API
// docs that this is destructive.
func (r *Repository) DeleteColumn(boardID, name string) error {
	return r.store.Update(func(doc *domain.Document) error {
		board := doc.FindBoard(boardID)
		if board == nil {
			return domain.NotFoundError{Kind: "board", ID: boardID}
		}
		if !board.HasColumn(name) {
			return domain.NotFoundError{Kind: "column", ID: name}
		}
		if len(board.Columns) == 1 {
			return domain.Validationf("cannot delete the last column on a board")
		}

		columns := board.Columns[:0]
		for _, c := range board.Columns {
			if c != name {
				columns = append(columns, c)
			}
		}
		board.Columns = columns
		board.UpdatedAt = r.now()

		deleteTasksCascade(doc, func(t domain.Task) bool {
			return t.BoardID == boardID && t.Column == name
		})
		return nil
	})
}
