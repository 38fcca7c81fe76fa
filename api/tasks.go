package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/repository"
)

func listTasks(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := repo.ListTasksByBoard(c.Param("id"))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func createTask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		task, err := repo.CreateTask(c.Param("id"), repository.TaskCreate{
			Title:       req.Title,
			Description: req.Description,
			Column:      req.Column,
			Priority:    req.Priority,
			Tags:        req.Tags,
			DueDate:     req.DueDate,
			Position:    req.Position,
		})
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

// updateTask replaces the task's field set wholesale; clients resend every
// field, including the full tag list.
func updateTask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		task, err := repo.UpdateTask(c.Param("id"), repository.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			Column:      req.Column,
			Priority:    req.Priority,
			Tags:        req.Tags,
			DueDate:     req.DueDate,
			Position:    req.Position,
		})
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := repo.DeleteTask(c.Param("id")); err != nil {
			return respondError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func addSubtask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req subtaskRequest
		if err := decodeBody(c, &req, maxBodyBytes); err != nil {
			return respondError(c, logger, err)
		}
		subtask, err := repo.AddSubtask(c.Param("id"), req.Title)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, subtask)
	}
}

func toggleSubtask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		subtask, err := repo.ToggleSubtask(c.Param("id"))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, subtask)
	}
}

func deleteSubtask(repo *repository.Repository, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := repo.DeleteSubtask(c.Param("id")); err != nil {
			return respondError(c, logger, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
