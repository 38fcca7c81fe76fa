package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/repository"
)

func getStats(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := repo.Stats()
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}

func listActivities(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := repo.ListActivitiesByBoard(c.Param("id"))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}
