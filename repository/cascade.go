package repository

import "taskboard-api/domain"

// Cascades are funneled through these two helpers so a future call site
// cannot delete a board or task and forget the dependents.

func deleteBoardCascade(doc *domain.Document, boardID string) {
	boards := doc.Boards[:0]
	for _, b := range doc.Boards {
		if b.ID != boardID {
			boards = append(boards, b)
		}
	}
	doc.Boards = boards

	deleteTasksCascade(doc, func(t domain.Task) bool { return t.BoardID == boardID })

	activities := doc.Activities[:0]
	for _, a := range doc.Activities {
		if a.BoardID != boardID {
			activities = append(activities, a)
		}
	}
	doc.Activities = activities
}

// deleteTasksCascade removes every task matching the predicate along with its
// notes. Subtasks are embedded in the task and go with it.
func deleteTasksCascade(doc *domain.Document, match func(domain.Task) bool) {
	removed := make(map[string]struct{})
	tasks := doc.Tasks[:0]
	for _, t := range doc.Tasks {
		if match(t) {
			removed[t.ID] = struct{}{}
			continue
		}
		tasks = append(tasks, t)
	}
	doc.Tasks = tasks

	if len(removed) == 0 {
		return
	}
	notes := doc.Notes[:0]
	for _, n := range doc.Notes {
		if _, gone := removed[n.TaskID]; !gone {
			notes = append(notes, n)
		}
	}
	doc.Notes = notes
}
