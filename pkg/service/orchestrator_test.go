package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
	imagerepo "github.com/JohnSili/multimodal-demo/pkg/repository/image"
	"github.com/JohnSili/multimodal-demo/pkg/repository/result"
	"github.com/JohnSili/multimodal-demo/pkg/service"
	"github.com/JohnSili/multimodal-demo/pkg/validation"
)

type fakeInferer struct {
	mu     sync.Mutex
	specs  []prompting.Spec
	images []models.Image
	reply  func(prompting.Spec) string
	err    error
}

func (f *fakeInferer) Infer(_ context.Context, spec prompting.Spec, img models.Image) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.specs = append(f.specs, spec)
	f.images = append(f.images, img)
	if f.err != nil {
		return "", f.err
	}
	return f.reply(spec), nil
}

func pngPayload(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

type fixture struct {
	orch     *service.Orchestrator
	inferer  *fakeInferer
	sessions *imagerepo.MemoryRepository
	results  *result.MemoryRepository
	reg      *metrics.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	langs, err := validation.NewLanguages([]string{"en", "ru"}, "en")
	require.NoError(t, err)

	f := &fixture{
		inferer: &fakeInferer{reply: func(spec prompting.Spec) string {
			return spec.Rendered + " Assistant: It is red."
		}},
		reg: metrics.NewRegistry(),
	}
	f.sessions = imagerepo.NewMemoryRepository(f.reg)
	f.results = result.NewMemoryRepository(f.reg)
	f.orch = service.NewOrchestrator(service.Deps{
		Validator: validation.NewValidator(validation.Limits{}),
		Languages: langs,
		Sessions:  f.sessions,
		Results:   f.results,
		Inferer:   f.inferer,
		Registry:  f.reg,
	})
	return f
}

func ptr(s string) *string { return &s }

func TestAnswerQuestionNewSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orch.AnswerQuestion(ctx, service.VQARequest{Image: pngPayload(t, 100, 100, color.RGBA{R: 255, A: 255})})
	require.NoError(t, err)
	require.Equal(t, "It is red.", res.Answer)
	require.NotEmpty(t, res.SessionID)
	require.False(t, res.Timestamp.IsZero())

	require.Len(t, f.inferer.specs, 1)
	require.Equal(t, prompting.DefaultQuestion, f.inferer.specs[0].Instruction)
	_, ok := f.sessions.Get(ctx, res.SessionID)
	require.True(t, ok)
}

func TestAnswerQuestionReusesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orch.AnswerQuestion(ctx, service.VQARequest{Image: pngPayload(t, 100, 100, color.RGBA{R: 255, A: 255})})
	require.NoError(t, err)

	second, err := f.orch.AnswerQuestion(ctx, service.VQARequest{
		Image:     pngPayload(t, 20, 30, color.RGBA{B: 255, A: 255}),
		Question:  ptr("And now?"),
		SessionID: ptr("  " + first.SessionID + " "),
	})
	require.NoError(t, err)
	require.Equal(t, first.SessionID, second.SessionID)

	require.Len(t, f.inferer.images, 2)
	require.Equal(t, 100, f.inferer.images[1].Decoded.Width)
	require.Equal(t, f.inferer.images[0].Raw.Bytes, f.inferer.images[1].Raw.Bytes)
	require.Equal(t, "And now?", f.inferer.specs[1].Instruction)
}

func TestEndSessionFreesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orch.AnswerQuestion(ctx, service.VQARequest{Image: pngPayload(t, 10, 10, color.White)})
	require.NoError(t, err)

	require.NoError(t, f.orch.EndSession(ctx, " "+res.SessionID+" "))
	_, ok := f.sessions.Get(ctx, res.SessionID)
	require.False(t, ok)

	require.NoError(t, f.orch.EndSession(ctx, res.SessionID))
	require.NoError(t, f.orch.EndSession(ctx, "   "))

	next, err := f.orch.AnswerQuestion(ctx, service.VQARequest{
		Image:     pngPayload(t, 10, 10, color.White),
		SessionID: ptr(res.SessionID),
	})
	require.NoError(t, err)
	require.NotEqual(t, res.SessionID, next.SessionID)
}

func TestAnswerQuestionUnknownSessionStartsNew(t *testing.T) {
	f := newFixture(t)

	res, err := f.orch.AnswerQuestion(context.Background(), service.VQARequest{
		Image:     pngPayload(t, 10, 10, color.White),
		SessionID: ptr("does-not-exist"),
	})
	require.NoError(t, err)
	require.NotEqual(t, "does-not-exist", res.SessionID)
	require.NotEmpty(t, res.SessionID)
}

func TestAnswerQuestionValidatesBeforeReuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orch.AnswerQuestion(ctx, service.VQARequest{Image: pngPayload(t, 10, 10, color.White)})
	require.NoError(t, err)

	_, err = f.orch.AnswerQuestion(ctx, service.VQARequest{Image: "   ", SessionID: ptr(first.SessionID)})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, validation.KindEmptyImage, verr.Kind)
	require.Len(t, f.inferer.specs, 1)
	require.Equal(t, int64(1), f.reg.SnapshotJSON()["validation_failures_total{code=EMPTY_IMAGE}"])
}

func TestInferenceFailureIsWrapped(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("CUDA out of memory")
	f.inferer.err = boom

	_, err := f.orch.AnswerQuestion(context.Background(), service.VQARequest{Image: pngPayload(t, 10, 10, color.White)})
	var ierr *service.InferenceError
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, prompting.TaskVQA, ierr.Task)
	require.ErrorIs(t, err, boom)

	_, err = f.orch.ExtractText(context.Background(), service.OCRRequest{Image: pngPayload(t, 10, 10, color.White)})
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, prompting.TaskOCR, ierr.Task)
}

func TestExtractTextStoresResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.inferer.reply = func(spec prompting.Spec) string {
		return spec.Rendered + "\n  Hello  \n\nWorld \n"
	}

	res, err := f.orch.ExtractText(ctx, service.OCRRequest{Image: pngPayload(t, 10, 10, color.White), Language: ptr("ru")})
	require.NoError(t, err)
	require.Equal(t, "Hello\nWorld", res.Text)
	require.NotEmpty(t, res.TaskID)
	require.Equal(t, "ru", f.inferer.specs[0].Language)

	entry, err := f.orch.OCRResult(ctx, res.TaskID)
	require.NoError(t, err)
	require.Equal(t, "Hello\nWorld", entry.Text)
}

func TestExtractTextDefaultsLanguage(t *testing.T) {
	f := newFixture(t)
	f.inferer.reply = func(prompting.Spec) string { return "x" }

	_, err := f.orch.ExtractText(context.Background(), service.OCRRequest{Image: pngPayload(t, 10, 10, color.White)})
	require.NoError(t, err)
	require.Equal(t, "en", f.inferer.specs[0].Language)
}

func TestExtractTextRejectsLanguage(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.ExtractText(context.Background(), service.OCRRequest{Image: pngPayload(t, 10, 10, color.White), Language: ptr("fr")})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, validation.KindLanguageError, verr.Kind)
	require.Empty(t, f.inferer.specs)
}

func TestOCRResultNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.orch.OCRResult(context.Background(), "missing")
	require.ErrorIs(t, err, service.ErrTaskNotFound)
}
