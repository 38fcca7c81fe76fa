package repository

import (
	"strings"

	"taskboard-api/domain"
)

func (r *Repository) AddSubtask(taskID, title string) (domain.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Subtask{}, domain.Validationf("subtask title is required")
	}

	var created domain.Subtask
	err := r.store.Update(func(doc *domain.Document) error {
		task := doc.FindTask(taskID)
		if task == nil {
			return domain.NotFoundError{Kind: "task", ID: taskID}
		}
		created = domain.Subtask{ID: r.newID(), Title: title}
		task.Subtasks = append(task.Subtasks, created)
		task.UpdatedAt = r.now()
		return nil
	})
	if err != nil {
		return domain.Subtask{}, err
	}
	return created, nil
}

// ToggleSubtask flips the completed flag of the subtask with the given id,
// wherever it lives.
func (r *Repository) ToggleSubtask(id string) (domain.Subtask, error) {
	var toggled domain.Subtask
	err := r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Tasks {
			task := &doc.Tasks[i]
			for j := range task.Subtasks {
				if task.Subtasks[j].ID != id {
					continue
				}
				task.Subtasks[j].Completed = !task.Subtasks[j].Completed
				task.UpdatedAt = r.now()
				toggled = task.Subtasks[j]
				return nil
			}
		}
		return domain.NotFoundError{Kind: "subtask", ID: id}
	})
	if err != nil {
		return domain.Subtask{}, err
	}
	return toggled, nil
}

func (r *Repository) DeleteSubtask(id string) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Tasks {
			task := &doc.Tasks[i]
			for j := range task.Subtasks {
				if task.Subtasks[j].ID != id {
					continue
				}
				task.Subtasks = append(task.Subtasks[:j], task.Subtasks[j+1:]...)
				task.UpdatedAt = r.now()
				return nil
			}
		}
		return domain.NotFoundError{Kind: "subtask", ID: id}
	})
}
