package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/backup"
	"taskboard-api/repository"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, repo *repository.Repository, backups *backup.Manager, logger *log.Logger) {
	e.GET("/healthz", healthz())

	e.GET("/api/boards", listBoards(repo, logger))
	e.POST("/api/boards", createBoard(repo, logger))
	e.PUT("/api/boards/:id", updateBoard(repo, logger))
	e.DELETE("/api/boards/:id", deleteBoard(repo, logger))

	e.GET("/api/boards/:id/tasks", listTasks(repo, logger))
	e.POST("/api/boards/:id/tasks", createTask(repo, logger))
	e.PUT("/api/tasks/:id", updateTask(repo, logger))
	e.DELETE("/api/tasks/:id", deleteTask(repo, logger))

	e.POST("/api/boards/:id/columns", addColumn(repo, logger))
	e.DELETE("/api/boards/:id/columns/:name", deleteColumn(repo, logger))

	e.POST("/api/tasks/:id/subtasks", addSubtask(repo, logger))
	e.PUT("/api/subtasks/:id", toggleSubtask(repo, logger))
	e.DELETE("/api/subtasks/:id", deleteSubtask(repo, logger))

	e.GET("/api/tasks/:id/notes", listNotes(repo, logger))
	e.POST("/api/tasks/:id/notes", createNote(repo, logger))
	e.DELETE("/api/notes/:id", deleteNote(repo, logger))

	e.GET("/api/stats", getStats(repo, logger))
	e.GET("/api/boards/:id/activities", listActivities(repo, logger))

	e.GET("/api/export", getExport(repo, logger))
	e.POST("/api/import", postImport(repo, backups, logger), GzipRequestMiddleware())

	e.GET("/api/backups", listBackups(backups, logger))
	e.POST("/api/backups/:name/restore", restoreBackup(backups, logger))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}
