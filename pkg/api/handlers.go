package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/inference"
	"github.com/JohnSili/multimodal-demo/pkg/service"
)

// TimeoutHeader lets a caller override the inference deadline, in seconds.
const TimeoutHeader = "X-Request-Timeout"

const maxRequestTimeout = time.Hour

// ModelStatus reports the backend's load state. *inference.Runner implements it.
type ModelStatus interface {
	Ready() bool
	Device() string
}

// Handlers serves the HTTP API on top of the orchestrator.
type Handlers struct {
	orch   *service.Orchestrator
	status ModelStatus
}

// NewHandlers constructs Handlers with provided dependencies.
func NewHandlers(orch *service.Orchestrator, status ModelStatus) *Handlers {
	return &Handlers{orch: orch, status: status}
}

// Health handles GET /api/health. It always answers 200.
func (h *Handlers) Health(c echo.Context) error {
	resp := HealthResponse{Status: "loading", Device: h.status.Device()}
	if h.status.Ready() {
		resp.Status = "healthy"
		resp.ModelLoaded = true
	}
	return c.JSON(http.StatusOK, resp)
}

// VQA handles POST /api/vqa
func (h *Handlers) VQA(c echo.Context) error {
	var req VQARequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if req.Image == nil {
		return missingField("image")
	}

	ctx := withRequestTimeout(c)
	res, err := h.orch.AnswerQuestion(ctx, service.VQARequest{
		Image:     *req.Image,
		Question:  req.Question,
		SessionID: req.SessionID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, VQAResponse{
		Answer:    res.Answer,
		SessionID: res.SessionID,
		Timestamp: res.Timestamp.Format(time.RFC3339Nano),
	})
}

// OCR handles POST /api/ocr
func (h *Handlers) OCR(c echo.Context) error {
	var req OCRRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if req.Image == nil {
		return missingField("image")
	}

	ctx := withRequestTimeout(c)
	res, err := h.orch.ExtractText(ctx, service.OCRRequest{Image: *req.Image, Language: req.Language})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OCRResponse{
		Text:        res.Text,
		DownloadURL: downloadURL(res.TaskID),
		TaskID:      res.TaskID,
	})
}

// DownloadOCR handles GET /api/download/ocr/:task_id
func (h *Handlers) DownloadOCR(c echo.Context) error {
	taskID := c.Param("task_id")
	entry, err := h.orch.OCRResult(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ocr_result_%s.txt"`, taskID))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(entry.Text))
}

// EndSession handles DELETE /api/session/:session_id
func (h *Handlers) EndSession(c echo.Context) error {
	if err := h.orch.EndSession(c.Request().Context(), c.Param("session_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func downloadURL(taskID string) string {
	return "/api/download/ocr/" + taskID
}

// withRequestTimeout applies TimeoutHeader when it holds a number of seconds
// in (0, maxRequestTimeout]. Anything else is ignored.
func withRequestTimeout(c echo.Context) context.Context {
	ctx := c.Request().Context()
	raw := strings.TrimSpace(c.Request().Header.Get(TimeoutHeader))
	if raw == "" {
		return ctx
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(secs > 0) || secs > maxRequestTimeout.Seconds() {
		log.Ctx(ctx).Debug().Str("value", raw).Msg("ignoring invalid request timeout")
		return ctx
	}
	return inference.WithTimeout(ctx, time.Duration(secs*float64(time.Second)))
}
