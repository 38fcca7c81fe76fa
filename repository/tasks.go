package repository

import (
	"sort"
	"strings"
	"time"

	"taskboard-api/domain"
)

// TaskCreate carries the fields accepted when creating a task. Column,
// Priority and Position fall back to defaults when absent.
type TaskCreate struct {
	Title       string
	Description string
	Column      string
	Priority    string
	Tags        []string
	DueDate     string
	Position    *int
}

// TaskUpdate replaces the task's mutable fields wholesale: callers resend the
// full title/description/column/priority/tags/dueDate set. Position moves the
// task within its column only when provided.
type TaskUpdate struct {
	Title       string
	Description string
	Column      string
	Priority    string
	Tags        []string
	DueDate     string
	Position    *int
}

func (r *Repository) ListTasksByBoard(boardID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.store.View(func(doc *domain.Document) error {
		if doc.FindBoard(boardID) == nil {
			return domain.NotFoundError{Kind: "board", ID: boardID}
		}
		for _, t := range doc.Tasks {
			if t.BoardID == boardID {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Position < tasks[j].Position })
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (r *Repository) CreateTask(boardID string, in TaskCreate) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, domain.Validationf("task title is required")
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return domain.Task{}, err
	}
	if err := validateDueDate(in.DueDate); err != nil {
		return domain.Task{}, err
	}

	var created domain.Task
	err = r.store.Update(func(doc *domain.Document) error {
		board := doc.FindBoard(boardID)
		if board == nil {
			return domain.NotFoundError{Kind: "board", ID: boardID}
		}
		column := in.Column
		if column == "" {
			column = board.Columns[0]
		} else if !board.HasColumn(column) {
			return domain.Validationf("board has no column %q", column)
		}

		position := 0
		if in.Position != nil {
			position = *in.Position
		} else {
			for _, t := range doc.Tasks {
				if t.BoardID == boardID && t.Position > position {
					position = t.Position
				}
			}
			position++
		}

		now := r.now()
		created = domain.Task{
			ID:          r.newID(),
			BoardID:     boardID,
			Title:       title,
			Description: in.Description,
			Column:      column,
			Priority:    priority,
			Tags:        normalizeTags(in.Tags),
			DueDate:     in.DueDate,
			Position:    position,
			Subtasks:    []domain.Subtask{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.Tasks = append(doc.Tasks, created)
		doc.Activities = append(doc.Activities, domain.Activity{
			ID:        r.newID(),
			BoardID:   boardID,
			Action:    domain.ActionTaskCreated,
			Details:   map[string]string{"title": title, "column": column},
			Timestamp: now,
		})
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return created, nil
}

func (r *Repository) UpdateTask(id string, in TaskUpdate) (domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, domain.Validationf("task title is required")
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return domain.Task{}, err
	}
	if err := validateDueDate(in.DueDate); err != nil {
		return domain.Task{}, err
	}

	var updated domain.Task
	err = r.store.Update(func(doc *domain.Document) error {
		task := doc.FindTask(id)
		if task == nil {
			return domain.NotFoundError{Kind: "task", ID: id}
		}
		board := doc.FindBoard(task.BoardID)
		if board == nil {
			return domain.NotFoundError{Kind: "board", ID: task.BoardID}
		}
		if in.Column == "" {
			return domain.Validationf("task column is required")
		}
		if !board.HasColumn(in.Column) {
			return domain.Validationf("board has no column %q", in.Column)
		}

		from := task.Column
		task.Title = title
		task.Description = in.Description
		task.Column = in.Column
		task.Priority = priority
		task.Tags = normalizeTags(in.Tags)
		task.DueDate = in.DueDate
		if in.Position != nil {
			task.Position = *in.Position
		}
		now := r.now()
		task.UpdatedAt = now

		if from != in.Column {
			doc.Activities = append(doc.Activities, domain.Activity{
				ID:        r.newID(),
				BoardID:   task.BoardID,
				Action:    domain.ActionTaskMoved,
				Details:   map[string]string{"title": title, "from": from, "to": in.Column},
				Timestamp: now,
			})
		}
		updated = *task
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes the task and its notes.
func (r *Repository) DeleteTask(id string) error {
	return r.store.Update(func(doc *domain.Document) error {
		if doc.FindTask(id) == nil {
			return domain.NotFoundError{Kind: "task", ID: id}
		}
		deleteTasksCascade(doc, func(t domain.Task) bool { return t.ID == id })
		return nil
	})
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func validateDueDate(due string) error {
	if due == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", due); err != nil {
		return domain.Validationf("invalid due date %q, want YYYY-MM-DD", due)
	}
	return nil
}
