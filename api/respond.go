package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard-api/domain"
)

// respondError maps the repository error taxonomy onto status codes:
// validation 400, not-found 404, everything else 500.
func respondError(c echo.Context, logger *log.Logger, err error) error {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error()})
	}
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: nf.Error()})
	}
	logger.WithError(err).WithField("path", c.Request().URL.Path).Error("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// decodeBody reads at most limit bytes of the request body into v.
func decodeBody(c echo.Context, v interface{}, limit int64) error {
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, limit))
	if err := dec.Decode(v); err != nil {
		return domain.Validationf("invalid request body")
	}
	return nil
}
