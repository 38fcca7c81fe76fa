package repository

import (
	"time"

	"github.com/bytedance/sonic"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"taskboard-api/domain"
)

const exportVersion = "1.0"

// ExportData holds the portable collections. The activity log stays behind:
// it references boards that may not survive a later import.
type ExportData struct {
	Boards []domain.Board `json:"boards"`
	Tasks  []domain.Task  `json:"tasks"`
	Notes  []domain.Note  `json:"taskNotes"`
}

// Export is the full-document download payload.
type Export struct {
	Version    string     `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Data       ExportData `json:"data"`
}

// ImportResult reports how many entities the import restored.
type ImportResult struct {
	Boards int `json:"boards"`
	Tasks  int `json:"tasks"`
	Notes  int `json:"notes"`
}

var importSchema = jsonschema.MustCompileString("import.schema.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "object",
			"properties": {
				"boards": {"type": "array"},
				"tasks": {"type": "array"},
				"taskNotes": {"type": "array"}
			}
		}
	}
}`)

func (r *Repository) Export() (Export, error) {
	out := Export{Version: exportVersion, ExportedAt: r.now()}
	err := r.store.View(func(doc *domain.Document) error {
		out.Data = ExportData{
			Boards: append([]domain.Board{}, doc.Boards...),
			Tasks:  append([]domain.Task{}, doc.Tasks...),
			Notes:  append([]domain.Note{}, doc.Notes...),
		}
		return nil
	})
	if err != nil {
		return Export{}, err
	}
	return out, nil
}

// parseImport checks raw against the import schema and decodes its data
// collections.
func parseImport(raw []byte) (ExportData, error) {
	var instance interface{}
	if err := sonic.ConfigStd.Unmarshal(raw, &instance); err != nil {
		return ExportData{}, domain.Validationf("import payload is not valid JSON")
	}
	if err := importSchema.Validate(instance); err != nil {
		return ExportData{}, domain.Validationf("import payload rejected: %v", err)
	}

	var payload struct {
		Data ExportData `json:"data"`
	}
	if err := sonic.ConfigStd.Unmarshal(raw, &payload); err != nil {
		return ExportData{}, domain.Validationf("import payload rejected: %v", err)
	}
	return payload.Data, nil
}

// ValidateImport rejects a payload without touching the document, so callers
// can refuse bad uploads before doing any destructive preparation.
func (r *Repository) ValidateImport(raw []byte) error {
	_, err := parseImport(raw)
	return err
}

// Import fully replaces boards, tasks and notes with the payload's data
// collections. This is a destructive overwrite, not a merge; callers snapshot
// a backup first. The activity log is cleared because its board references
// no longer hold.
func (r *Repository) Import(raw []byte) (ImportResult, error) {
	payload, err := parseImport(raw)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{}
	err = r.store.Update(func(doc *domain.Document) error {
		doc.Boards = payload.Boards
		doc.Tasks = payload.Tasks
		doc.Notes = payload.Notes
		doc.Activities = []domain.Activity{}
		doc.Normalize()
		result = ImportResult{
			Boards: len(doc.Boards),
			Tasks:  len(doc.Tasks),
			Notes:  len(doc.Notes),
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}
