package repository

import (
	"sort"

	"taskboard-api/domain"
)

// PriorityCount is one bucket of the dashboard's priority breakdown.
type PriorityCount struct {
	Priority domain.Priority `json:"priority"`
	Count    int             `json:"count"`
}

// Stats is the dashboard aggregate, computed fresh per call and never stored.
type Stats struct {
	TotalBoards     int             `json:"totalBoards"`
	TotalTasks      int             `json:"totalTasks"`
	CompletedTasks  int             `json:"completedTasks"`
	InProgressTasks int             `json:"inProgressTasks"`
	BacklogTasks    int             `json:"backlogTasks"`
	ColumnStats     map[string]int  `json:"columnStats"`
	PriorityStats   []PriorityCount `json:"priorityStats"`
	RecentTasks     []domain.Task   `json:"recentTasks"`
}

func (r *Repository) Stats() (Stats, error) {
	stats := Stats{
		ColumnStats:   map[string]int{},
		PriorityStats: []PriorityCount{},
		RecentTasks:   []domain.Task{},
	}
	err := r.store.View(func(doc *domain.Document) error {
		stats.TotalBoards = len(doc.Boards)
		stats.TotalTasks = len(doc.Tasks)

		byPriority := map[domain.Priority]int{}
		for _, t := range doc.Tasks {
			stats.ColumnStats[t.Column]++
			priority := t.Priority
			if priority == "" {
				priority = domain.PriorityMedium
			}
			byPriority[priority]++
		}
		stats.CompletedTasks = stats.ColumnStats["Done"]
		stats.InProgressTasks = stats.ColumnStats["In Progress"]
		stats.BacklogTasks = stats.ColumnStats["Backlog"]

		for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
			if n := byPriority[p]; n > 0 {
				stats.PriorityStats = append(stats.PriorityStats, PriorityCount{Priority: p, Count: n})
			}
		}

		recent := append([]domain.Task{}, doc.Tasks...)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
		})
		if len(recent) > 5 {
			recent = recent[:5]
		}
		stats.RecentTasks = recent
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}
