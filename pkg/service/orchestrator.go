// Package service composes validation, session storage, inference and
// response cleaning into the two request flows the API exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
	imagerepo "github.com/JohnSili/multimodal-demo/pkg/repository/image"
	"github.com/JohnSili/multimodal-demo/pkg/repository/result"
	"github.com/JohnSili/multimodal-demo/pkg/sanitize"
	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

// Inferer produces raw model text. *inference.Runner implements it.
type Inferer interface {
	Infer(ctx context.Context, spec prompting.Spec, img models.Image) (string, error)
}

// VQARequest mirrors the API body after schema checks. Optional fields are nil
// when absent.
type VQARequest struct {
	Image     string
	Question  *string
	SessionID *string
}

type VQAResult struct {
	Answer    string
	SessionID string
	Timestamp time.Time
}

type OCRRequest struct {
	Image    string
	Language *string
}

type OCRResult struct {
	Text   string
	TaskID string
}

// Orchestrator is constructed once and shared by all handlers.
type Orchestrator struct {
	validator *validation.Validator
	languages *validation.Languages
	sessions  imagerepo.SessionRepository
	results   result.Repository
	inferer   Inferer
	reg       *metrics.Registry
	now       func() time.Time
}

type Deps struct {
	Validator *validation.Validator
	Languages *validation.Languages
	Sessions  imagerepo.SessionRepository
	Results   result.Repository
	Inferer   Inferer
	// Registry may be nil.
	Registry *metrics.Registry
}

func NewOrchestrator(d Deps) *Orchestrator {
	return &Orchestrator{
		validator: d.Validator,
		languages: d.Languages,
		sessions:  d.Sessions,
		results:   d.Results,
		inferer:   d.Inferer,
		reg:       d.Registry,
		now:       time.Now,
	}
}

// AnswerQuestion answers a question about the request image, or about the
// image already stored for a known session. The payload is validated even
// when the stored image is used.
func (o *Orchestrator) AnswerQuestion(ctx context.Context, req VQARequest) (VQAResult, error) {
	img, err := o.validate(ctx, req.Image)
	if err != nil {
		return VQAResult{}, err
	}

	sessionID, img, err := o.resolveSession(ctx, req.SessionID, img)
	if err != nil {
		return VQAResult{}, err
	}

	question := ""
	if req.Question != nil {
		question = *req.Question
	}
	spec := prompting.VQA(question)

	raw, err := o.inferer.Infer(ctx, spec, img)
	if err != nil {
		return VQAResult{}, &InferenceError{Task: spec.Task, Err: err}
	}

	return VQAResult{
		Answer:    sanitize.Answer(raw, spec.Rendered, spec.Instruction),
		SessionID: sessionID,
		Timestamp: o.now(),
	}, nil
}

// ExtractText runs OCR and stores the cleaned text for download.
func (o *Orchestrator) ExtractText(ctx context.Context, req OCRRequest) (OCRResult, error) {
	img, err := o.validate(ctx, req.Image)
	if err != nil {
		return OCRResult{}, err
	}

	lang, err := o.languages.Validate(req.Language)
	if err != nil {
		o.countValidationFailure(ctx, err)
		return OCRResult{}, err
	}

	spec := prompting.OCR(lang)
	raw, err := o.inferer.Infer(ctx, spec, img)
	if err != nil {
		return OCRResult{}, &InferenceError{Task: spec.Task, Err: err}
	}

	text := sanitize.OCRText(raw, spec.Rendered, spec.Instruction)
	taskID, err := o.results.Save(ctx, text)
	if err != nil {
		return OCRResult{}, fmt.Errorf("store ocr result: %w", err)
	}

	log.Ctx(ctx).Info().Str("task_id", taskID).Str("language", lang).Int("chars", len(text)).Msg("text extracted")
	return OCRResult{Text: text, TaskID: taskID}, nil
}

// OCRResult returns a stored OCR result or ErrTaskNotFound.
func (o *Orchestrator) OCRResult(ctx context.Context, taskID string) (models.OCRResultEntry, error) {
	entry, ok := o.results.Get(ctx, taskID)
	if !ok {
		return models.OCRResultEntry{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return entry, nil
}

// EndSession frees a session's image ahead of its expiry. Ending an unknown
// or already expired session is not an error.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) error {
	id, ok := validation.SessionID(&sessionID)
	if !ok {
		return nil
	}
	if err := o.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// resolveSession reuses a stored image for a known session id. An unknown or
// absent id starts a new session holding img.
func (o *Orchestrator) resolveSession(ctx context.Context, supplied *string, img models.Image) (string, models.Image, error) {
	if id, ok := validation.SessionID(supplied); ok {
		if entry, found := o.sessions.Get(ctx, id); found {
			return id, entry.Image, nil
		}
		log.Ctx(ctx).Info().Str("session_id", id).Msg("unknown session, starting a new one")
	}

	id, err := o.sessions.Save(ctx, img)
	if err != nil {
		return "", models.Image{}, fmt.Errorf("store session image: %w", err)
	}
	return id, img, nil
}

func (o *Orchestrator) validate(ctx context.Context, payload string) (models.Image, error) {
	img, err := o.validator.Validate(payload)
	if err != nil {
		o.countValidationFailure(ctx, err)
		return models.Image{}, err
	}
	return img, nil
}

func (o *Orchestrator) countValidationFailure(ctx context.Context, err error) {
	log.Ctx(ctx).Warn().Err(err).Msg("request rejected")
	var verr *validation.Error
	if errors.As(err, &verr) {
		o.reg.Inc(ctx, metrics.ValidationFailures, metrics.Labels{"code": verr.Code}, 1)
	}
}
