package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lojinha/catalog-api/internal/core/domain"
)

// messageResponse is the canonical envelope for all error responses, matching
// the legacy wire format.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
//
// Handlers map their own errors in most paths; this is the safety net for
// anything that escapes.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (middleware rejections, bind failures, router 404s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors that escaped handler-level mapping.
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Produto não encontrado"
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusConflict, "Produto já existe"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Usuário já existe"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuário não encontrado"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Login ou senha incorretos"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
