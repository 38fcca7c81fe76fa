package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/repository"
)

func listNotes(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes, err := repo.ListNotesByTask(c.Param("id"))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, notes)
	}
}

func createNote(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req noteRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		note, err := repo.CreateNote(c.Param("id"), req.Note)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, note)
	}
}

func deleteNote(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := repo.DeleteNote(c.Param("id")); err != nil {
			return respondError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
