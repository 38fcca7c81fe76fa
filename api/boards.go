package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/repository"
)

func listBoards(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		boards, err := repo.ListBoards()
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, boards)
	}
}

func createBoard(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req boardCreateRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		board, err := repo.CreateBoard(req.Name, req.Description, req.Columns)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, board)
	}
}

func updateBoard(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req boardUpdateRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		board, err := repo.UpdateBoard(c.Param("id"), repository.BoardUpdate{
			Name:        req.Name,
			Description: req.Description,
			Columns:     req.Columns,
		})
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, board)
	}
}

// deleteBoard removes the board with every task, subtask and note on it.
func deleteBoard(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := repo.DeleteBoard(c.Param("id")); err != nil {
			return respondError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func addColumn(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req columnRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		board, err := repo.AddColumn(c.Param("id"), req.Name, req.Position)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, board)
	}
}

// deleteColumn removes the column and deletes every task in it. There is no
// reassignment; clients are expected to warn the user first.
func deleteColumn(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		name, err := url.PathUnescape(c.Param("name"))
		if err != nil {
			name = c.Param("name")
		}
		if err := repo.DeleteColumn(c.Param("id"), name); err != nil {
			return respondError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
