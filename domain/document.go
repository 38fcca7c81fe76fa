package domain

// Document is the whole persisted state: every collection the store owns.
type Document struct {
	Boards     []Board    `json:"boards"`
	Tasks      []Task     `json:"tasks"`
	Notes      []Note     `json:"taskNotes"`
	Activities []Activity `json:"activities"`
}

// Normalize fills collections that are missing from an older or hand-edited
// document so the rest of the code never has to nil-check them.
func (d *Document) Normalize() {
	if d.Boards == nil {
		d.Boards = []Board{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Notes == nil {
		d.Notes = []Note{}
	}
	if d.Activities == nil {
		d.Activities = []Activity{}
	}
}

// FindBoard returns a pointer into the document's board slice, or nil.
func (d *Document) FindBoard(id string) *Board {
	for i := range d.Boards {
		if d.Boards[i].ID == id {
			return &d.Boards[i]
		}
	}
	return nil
}

// FindTask returns a pointer into the document's task slice, or nil.
func (d *Document) FindTask(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}
