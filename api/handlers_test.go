package api

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/backup"
	"taskboard-api/domain"
	"taskboard-api/repository"
	"taskboard-api/storage"
)

func newTestServer(t *testing.T) (*echo.Echo, *repository.Repository, *backup.Manager) {
	t.Helper()
	dir := t.TempDir()
	logger := log.New()
	store, err := storage.Open(filepath.Join(dir, "board.json"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	repo := repository.New(store)
	backups, err := backup.NewManager(store, filepath.Join(dir, "backups"), backup.DefaultRetention, logger)
	if err != nil {
		t.Fatalf("backup manager: %v", err)
	}
	e := echo.New()
	Register(e, repo, backups, logger)
	return e, repo, backups
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := sonic.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestBoardEndpoints(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/boards", `{"name":"Launch","description":"v1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var board domain.Board
	decodeInto(t, rec, &board)
	if board.ID == "" || board.Name != "Launch" || len(board.Columns) != 4 {
		t.Fatalf("unexpected board: %#v", board)
	}

	rec = do(e, http.MethodGet, "/api/boards", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var boards []domain.Board
	decodeInto(t, rec, &boards)
	if len(boards) != 1 {
		t.Fatalf("expected one board, got %d", len(boards))
	}

	rec = do(e, http.MethodPut, "/api/boards/"+board.ID, `{"name":"Launch v2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &board)
	if board.Name != "Launch v2" {
		t.Fatalf("expected renamed board, got %q", board.Name)
	}

	rec = do(e, http.MethodDelete, "/api/boards/"+board.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	rec = do(e, http.MethodDelete, "/api/boards/"+board.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeat delete, got %d", rec.Code)
	}
}

func TestCreateBoardValidation(t *testing.T) {
	e, _, _ := newTestServer(t)

	cases := map[string]string{
		"blank_name":        `{"name":"  "}`,
		"duplicate_columns": `{"name":"X","columns":["A","A"]}`,
		"not_json":          `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/boards", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			decodeInto(t, rec, &resp)
			if resp.Error == "" {
				t.Fatal("expected error message in body")
			}
		})
	}
}

func TestTaskEndpoints(t *testing.T) {
	e, repo, _ := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", []string{"Backlog", "Done"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	rec := do(e, http.MethodPost, "/api/boards/"+board.ID+"/tasks", `{"title":"Ship v1","tags":["release"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var task domain.Task
	decodeInto(t, rec, &task)
	if task.Position != 1 || task.Column != "Backlog" || task.Priority != domain.PriorityMedium {
		t.Fatalf("unexpected task: %#v", task)
	}

	rec = do(e, http.MethodPost, "/api/boards/missing/tasks", `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing board, got %d", rec.Code)
	}

	rec = do(e, http.MethodPut, "/api/tasks/"+task.ID, `{"title":"Ship v1","column":"Done","tags":["release"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &task)
	if task.Column != "Done" {
		t.Fatalf("expected task moved to Done, got %q", task.Column)
	}

	rec = do(e, http.MethodGet, "/api/boards/"+board.ID+"/activities", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var entries []repository.ActivityEntry
	decodeInto(t, rec, &entries)
	if len(entries) != 2 {
		t.Fatalf("expected created+moved activities, got %d", len(entries))
	}
	if entries[0].Action != domain.ActionTaskMoved || entries[0].Age == "" {
		t.Fatalf("unexpected newest activity: %#v", entries[0])
	}
	if entries[0].Details["from"] != "Backlog" || entries[0].Details["to"] != "Done" {
		t.Fatalf("unexpected move details: %#v", entries[0].Details)
	}

	rec = do(e, http.MethodGet, "/api/boards/"+board.ID+"/tasks", "")
	var tasks []domain.Task
	decodeInto(t, rec, &tasks)
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}

	rec = do(e, http.MethodDelete, "/api/tasks/"+task.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
}

func TestColumnEndpoints(t *testing.T) {
	e, repo, _ := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", []string{"Backlog", "Done"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	doomed, err := repo.CreateTask(board.ID, repository.TaskCreate{Title: "stuck", Column: "Backlog"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := do(e, http.MethodPost, "/api/boards/"+board.ID+"/columns", `{"name":"Review","position":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Board
	decodeInto(t, rec, &updated)
	if updated.Columns[1] != "Review" {
		t.Fatalf("expected Review inserted at 1, got %v", updated.Columns)
	}

	rec = do(e, http.MethodDelete, "/api/boards/"+board.ID+"/columns/Backlog", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", rec.Code, rec.Body.String())
	}

	tasks, err := repo.ListTasksByBoard(board.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, task := range tasks {
		if task.ID == doomed.ID {
			t.Fatal("expected task in deleted column to be removed")
		}
	}

	rec = do(e, http.MethodDelete, "/api/boards/"+board.ID+"/columns/Nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestColumnNameWithSpaces(t *testing.T) {
	e, repo, _ := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	rec := do(e, http.MethodDelete, "/api/boards/"+board.ID+"/columns/In%20Progress", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", rec.Code, rec.Body.String())
	}

	boards, err := repo.ListBoards()
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if boards[0].HasColumn("In Progress") {
		t.Fatalf("expected column removed, got %v", boards[0].Columns)
	}
}

func TestSubtaskAndNoteEndpoints(t *testing.T) {
	e, repo, _ := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	task, err := repo.CreateTask(board.ID, repository.TaskCreate{Title: "steps"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := do(e, http.MethodPost, "/api/tasks/"+task.ID+"/subtasks", `{"title":"step one"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var sub domain.Subtask
	decodeInto(t, rec, &sub)

	rec = do(e, http.MethodPut, "/api/subtasks/"+sub.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	decodeInto(t, rec, &sub)
	if !sub.Completed {
		t.Fatal("expected toggled subtask completed")
	}

	rec = do(e, http.MethodDelete, "/api/subtasks/"+sub.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/tasks/"+task.ID+"/notes", `{"note":"remember"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var note domain.Note
	decodeInto(t, rec, &note)

	rec = do(e, http.MethodGet, "/api/tasks/"+task.ID+"/notes", "")
	var notes []domain.Note
	decodeInto(t, rec, &notes)
	if len(notes) != 1 || notes[0].Note != "remember" {
		t.Fatalf("unexpected notes: %#v", notes)
	}

	rec = do(e, http.MethodDelete, "/api/notes/"+note.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	e, repo, _ := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := repo.CreateTask(board.ID, repository.TaskCreate{Title: "a", Column: "Done", Priority: "high"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := do(e, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var stats repository.Stats
	decodeInto(t, rec, &stats)
	if stats.TotalBoards != 1 || stats.TotalTasks != 1 || stats.CompletedTasks != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	e, repo, backups := newTestServer(t)
	board, err := repo.CreateBoard("Launch", "", nil)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, err := repo.CreateTask(board.ID, repository.TaskCreate{Title: "keep"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	rec := do(e, http.MethodGet, "/api/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	exported := rec.Body.String()

	rec = do(e, http.MethodPost, "/api/import", exported)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var resp importResponse
	decodeInto(t, rec, &resp)
	if resp.Restored.Boards != 1 || resp.Restored.Tasks != 1 {
		t.Fatalf("unexpected restored counts: %+v", resp.Restored)
	}
	if resp.Backup == "" {
		t.Fatal("expected safety backup name in response")
	}

	infos, err := backups.List()
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(infos) == 0 {
		t.Fatal("expected the import to snapshot a backup first")
	}

	rec = do(e, http.MethodPost, "/api/import", `{"version":"1.0"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing data, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestImportRejectedPayloadTakesNoBackup(t *testing.T) {
	e, _, backups := newTestServer(t)

	for _, body := range []string{"not json", `{"version":"1.0"}`, `{"data":{"boards":"nope"}}`} {
		rec := do(e, http.MethodPost, "/api/import", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d: %s", body, rec.Code, rec.Body.String())
		}
	}

	// Rejected uploads must not churn the retention window.
	infos, err := backups.List()
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected no backups after rejected imports, got %#v", infos)
	}
}

func TestImportAcceptsGzipBody(t *testing.T) {
	e, repo, _ := newTestServer(t)
	if _, err := repo.CreateBoard("Launch", "", nil); err != nil {
		t.Fatalf("create board: %v", err)
	}

	rec := do(e, http.MethodGet, "/api/export", "")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(rec.Body.Bytes()); err != nil {
		t.Fatalf("gzip export: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderContentEncoding, "gzip")
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200 for gzip import, got %d: %s", rec2.Code, rec2.Body.String())
	}

	badReq := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader("not gzip"))
	badReq.Header.Set(echo.HeaderContentEncoding, "gzip")
	rec3 := httptest.NewRecorder()
	e.ServeHTTP(rec3, badReq)
	if rec3.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid gzip, got %d", rec3.Code)
	}
}

func TestHasGzipEncoding(t *testing.T) {
	cases := map[string]struct {
		header string
		want   bool
	}{
		"empty":          {header: "", want: false},
		"gzip":           {header: "gzip", want: true},
		"mixed_case":     {header: "GZip", want: true},
		"token_list":     {header: "br, gzip", want: true},
		"substring_only": {header: "x-gzip", want: false},
		"other":          {header: "deflate", want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := hasGzipEncoding(tc.header); got != tc.want {
				t.Fatalf("hasGzipEncoding(%q) = %v, want %v", tc.header, got, tc.want)
			}
		})
	}
}

func TestBackupEndpoints(t *testing.T) {
	e, repo, backups := newTestServer(t)
	if _, err := repo.CreateBoard("Before", "", nil); err != nil {
		t.Fatalf("create board: %v", err)
	}
	name, err := backups.Create()
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := repo.DeleteBoard(mustFirstBoardID(t, repo)); err != nil {
		t.Fatalf("delete board: %v", err)
	}

	rec := do(e, http.MethodGet, "/api/backups", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var infos []backup.Info
	decodeInto(t, rec, &infos)
	if len(infos) != 1 || infos[0].Name != name {
		t.Fatalf("unexpected backups: %#v", infos)
	}

	rec = do(e, http.MethodPost, "/api/backups/"+name+"/restore", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	boards, err := repo.ListBoards()
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) != 1 || boards[0].Name != "Before" {
		t.Fatalf("expected restored board, got %#v", boards)
	}

	rec = do(e, http.MethodPost, "/api/backups/backup-19990101-000000.json/restore", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown backup, got %d", rec.Code)
	}
}

func mustFirstBoardID(t *testing.T, repo *repository.Repository) string {
	t.Helper()
	boards, err := repo.ListBoards()
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) == 0 {
		t.Fatal("no boards")
	}
	return boards[0].ID
}
