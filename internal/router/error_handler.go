package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sociallink-app/backend/internal/apperr"
)

var kindStatus = map[apperr.Kind]int{
	apperr.BadRequest:       http.StatusBadRequest,
	apperr.Unauthorized:     http.StatusUnauthorized,
	apperr.Forbidden:        http.StatusForbidden,
	apperr.NotFound:         http.StatusNotFound,
	apperr.Conflict:         http.StatusConflict,
	apperr.UnsupportedMedia: http.StatusUnsupportedMediaType,
	apperr.PayloadTooLarge:  http.StatusRequestEntityTooLarge,
	apperr.Internal:         http.StatusInternalServerError,
}

// NewHTTPErrorHandler maps application errors to HTTP responses in one
// place. Internal detail is logged server-side and redacted from clients
// outside development mode. Router fallthroughs under /api/ get the
// {message, path} 404 body.
func NewHTTPErrorHandler(log *zap.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		path := c.Request().URL.Path

		// echo.ErrNotFound means no route matched, as opposed to a
		// handler reporting a missing entity.
		if errors.Is(err, echo.ErrNotFound) && strings.HasPrefix(path, "/api/") {
			_ = c.JSON(http.StatusNotFound, echo.Map{"message": "Route not found", "path": path})
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong!"

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = kindStatus[ae.Kind]
			message = ae.Message
			if ae.Kind == apperr.Internal {
				log.Error("internal error",
					zap.String("method", c.Request().Method),
					zap.String("path", path),
					zap.Error(err),
				)
				if !development {
					message = "Something went wrong!"
				}
			}
		case errors.As(err, &he):
			status = he.Code
			message = fmt.Sprintf("%v", he.Message)
		default:
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", path),
				zap.Error(err),
			)
			if development {
				message = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, echo.Map{"message": message})
	}
}
