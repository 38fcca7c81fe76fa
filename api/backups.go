package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/backup"
)

func listBackups(backups *backup.Manager, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		infos, err := backups.List()
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, infos)
	}
}

func restoreBackup(backups *backup.Manager, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		if err := backups.Restore(name); err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"restored": name})
	}
}
