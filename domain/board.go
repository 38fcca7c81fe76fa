package domain

import "time"

// DefaultColumns is the column layout assigned to boards created without one.
var DefaultColumns = []string{"Backlog", "In Progress", "Review", "Done"}

// Board is a named workspace holding an ordered set of columns.
type Board struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Columns     []string  `json:"columns"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasColumn reports whether name is one of the board's columns.
func (b *Board) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}
