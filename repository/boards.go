package repository

import (
	"strings"

	"taskboard-api/domain"
)

// BoardUpdate carries the mutable board fields. Nil pointers mean "leave
// unchanged"; a non-nil Columns replaces the whole column list.
type BoardUpdate struct {
	Name        *string
	Description *string
	Columns     []string
}

func (r *Repository) ListBoards() ([]domain.Board, error) {
	var boards []domain.Board
	err := r.store.View(func(doc *domain.Document) error {
		boards = append([]domain.Board{}, doc.Boards...)
		return nil
	})
	return boards, err
}

func (r *Repository) CreateBoard(name, description string, columns []string) (domain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Board{}, domain.Validationf("board name is required")
	}
	if len(columns) == 0 {
		columns = append([]string{}, domain.DefaultColumns...)
	} else if err := validateColumns(columns); err != nil {
		return domain.Board{}, err
	}

	now := r.now()
	board := domain.Board{
		ID:          r.newID(),
		Name:        name,
		Description: description,
		Columns:     columns,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := r.store.Update(func(doc *domain.Document) error {
		doc.Boards = append(doc.Boards, board)
		return nil
	})
	if err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

func (r *Repository) UpdateBoard(id string, upd BoardUpdate) (domain.Board, error) {
	var updated domain.Board
	err := r.store.Update(func(doc *domain.Document) error {
		board := doc.FindBoard(id)
		if board == nil {
			return domain.NotFoundError{Kind: "board", ID: id}
		}
		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return domain.Validationf("board name is required")
			}
			board.Name = name
		}
		if upd.Description != nil {
			board.Description = *upd.Description
		}
		if upd.Columns != nil {
			if err := validateColumns(upd.Columns); err != nil {
				return err
			}
			// A column list that strands an existing task is rejected rather
			// than silently orphaning it.
			for i := range doc.Tasks {
				t := &doc.Tasks[i]
				if t.BoardID != id {
					continue
				}
				if !contains(upd.Columns, t.Column) {
					return domain.Validationf("column %q still has tasks and cannot be removed", t.Column)
				}
			}
			board.Columns = append([]string{}, upd.Columns...)
		}
		board.UpdatedAt = r.now()
		updated = *board
		return nil
	})
	if err != nil {
		return domain.Board{}, err
	}
	return updated, nil
}

// DeleteBoard removes the board, every task on it, those tasks' notes and the
// board's activity log.
func (r *Repository) DeleteBoard(id string) error {
	return r.store.Update(func(doc *domain.Document) error {
		if doc.FindBoard(id) == nil {
			return domain.NotFoundError{Kind: "board", ID: id}
		}
		deleteBoardCascade(doc, id)
		return nil
	})
}

func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return domain.Validationf("a board needs at least one column")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return domain.Validationf("column names cannot be blank")
		}
		if _, dup := seen[c]; dup {
			return domain.Validationf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
