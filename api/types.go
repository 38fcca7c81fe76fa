package api

const (
	// Body limits keep a misbehaving client from ballooning memory.
	maxBodyBytes   = 1 << 20  // 1 MiB for entity payloads
	maxImportBytes = 32 << 20 // 32 MiB for full-document imports
)

type errorResponse struct {
	Error string `json:"error"`
}

type boardCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

type boardUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Columns     []string `json:"columns"`
}

type taskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Column      string   `json:"column"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"dueDate"`
	Position    *int     `json:"position"`
}

type columnRequest struct {
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

type subtaskRequest struct {
	Title string `json:"title"`
}

type noteRequest struct {
	Note string `json:"note"`
}

type importResponse struct {
	Restored restoredCounts `json:"restored"`
	Backup   string         `json:"backup"`
}

type restoredCounts struct {
	Boards int `json:"boards"`
	Tasks  int `json:"tasks"`
	Notes  int `json:"notes"`
}
