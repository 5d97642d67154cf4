package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/prompting"
	"github.com/JohnSili/multimodal-demo/pkg/service"
	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

// SchemaError is a request that does not match the expected body shape.
type SchemaError struct {
	Code    string
	Message string
	Err     error
}

func (e *SchemaError) Error() string { return e.Message }

func (e *SchemaError) Unwrap() error { return e.Err }

func missingField(name string) *SchemaError {
	return &SchemaError{Code: "MISSING_FIELD", Message: fmt.Sprintf("field required: %s", name)}
}

func invalidBody(err error) *SchemaError {
	msg := "malformed request body"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return &SchemaError{Code: "INVALID_BODY", Message: msg, Err: err}
}

// toEnvelope maps an error returned by a handler to a status and body.
func toEnvelope(err error) (int, ErrorResponse) {
	var (
		verr *validation.Error
		ierr *service.InferenceError
		serr *SchemaError
		herr *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: verr.Family, Message: verr.Message, Code: verr.Code}
	case errors.As(err, &ierr):
		if ierr.Task == prompting.TaskOCR {
			return http.StatusInternalServerError, ErrorResponse{
				Error: "OCR_ERROR", Message: fmt.Sprintf("Text extraction failed: %v", ierr.Err), Code: "OCR_ERROR",
			}
		}
		return http.StatusInternalServerError, ErrorResponse{
			Error: "INFERENCE_ERROR", Message: fmt.Sprintf("Model inference failed: %v", ierr.Err), Code: "MODEL_ERROR",
		}
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "NOT_FOUND", Message: "OCR result not found or expired", Code: "TASK_NOT_FOUND",
		}
	case errors.As(err, &serr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "VALIDATION_ERROR", Message: serr.Message, Code: serr.Code}
	case errors.As(err, &herr):
		text := http.StatusText(herr.Code)
		return herr.Code, ErrorResponse{
			Error:   "HTTP_ERROR",
			Message: fmt.Sprint(herr.Message),
			Code:    strings.ToUpper(strings.ReplaceAll(text, " ", "_")),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "INTERNAL_ERROR", Message: "internal server error", Code: "SERVER_ERROR",
		}
	}
}

// ErrorHandler is the echo HTTPErrorHandler. Every error response carries the
// {error, message, code} envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := toEnvelope(err)
	logger := log.Ctx(c.Request().Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("code", body.Code).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", body.Code).Msg("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
