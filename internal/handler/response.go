package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"pet_constitution/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// Envelope is the shape of every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

const internalErrorMessage = "internal server error"

var errInvalidBody = errors.New("request body must be valid JSON")

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope and stops the chain.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// respondError maps a service error onto its status code. Anything that is
// not a domain error is logged and hidden behind a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var dispatchErr *service.DispatchError
	switch {
	case errors.As(err, &dispatchErr):
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "failed to send email",
			Error:   dispatchErr.Cause(),
		})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuth):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbiddenToken):
		Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

// bindBody decodes the request body as JSON whatever its Content-Type, so
// text/plain bodies carrying JSON are accepted. An empty body decodes as {}.
func bindBody(c *gin.Context, obj any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		return errInvalidBody
	}
	return nil
}

// parseID reads a numeric path parameter. Ids that cannot exist come back
// as notFound.
func parseID(c *gin.Context, notFound error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}
