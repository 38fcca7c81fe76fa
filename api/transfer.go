package api

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/backup"
	"taskboard-api/repository"
)

func getExport(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := repo.Export()
		if err != nil {
			return respondError(c, logger, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="taskboard-export.json"`)
		return c.JSON(http.StatusOK, out)
	}
}

// postImport replaces the whole document with the uploaded payload. The
// current state is snapshotted first so a bad import stays recoverable from
// the backup list.
func postImport(repo *repository.Repository, backups *backup.Manager, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newImportMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		readStart := time.Now()
		raw, readErr := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
		metrics.ObserveRead(time.Since(readStart))
		if readErr != nil {
			metrics.SetErrorStage("read")
			err = respondError(c, logger, readErr)
			return err
		}

		// Reject bad payloads before the safety snapshot: a backup per
		// malformed request would churn the retention window for nothing.
		if validateErr := repo.ValidateImport(raw); validateErr != nil {
			metrics.SetErrorStage("validate")
			err = respondError(c, logger, validateErr)
			return err
		}

		backupStart := time.Now()
		name, backupErr := backups.Create()
		metrics.ObserveBackup(time.Since(backupStart))
		if backupErr != nil {
			metrics.SetErrorStage("backup")
			err = respondError(c, logger, backupErr)
			return err
		}

		applyStart := time.Now()
		result, importErr := repo.Import(raw)
		metrics.ObserveApply(time.Since(applyStart))
		if importErr != nil {
			metrics.SetErrorStage("apply")
			err = respondError(c, logger, importErr)
			return err
		}
		metrics.SetRestored(result.Boards, result.Tasks, result.Notes)

		err = c.JSON(http.StatusOK, importResponse{
			Restored: restoredCounts{Boards: result.Boards, Tasks: result.Tasks, Notes: result.Notes},
			Backup:   name,
		})
		return err
	}
}
