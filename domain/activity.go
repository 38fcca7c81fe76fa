package domain

import (
	"fmt"
	"time"
)

// Activity actions recorded on a board's log.
const (
	ActionTaskCreated = "task_created"
	ActionTaskMoved   = "task_moved"
)

// Activity is an append-only log entry describing a state change on a board.
type Activity struct {
	ID        string            `json:"id"`
	BoardID   string            `json:"boardId"`
	Action    string            `json:"action"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// RelativeAge renders the distance between now and ts the way the activity
// feed displays it: "Just now", minutes, hours, days, then a calendar date.
func RelativeAge(now, ts time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return ts.Format("Jan 2, 2006")
}
