package ollama_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JohnSili/multimodal-demo/pkg/clients/ollama"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = io.WriteString(w, `{"models":[{"name":"llava:latest","size":1},{"name":"moondream:1.8b"}]}`)
	}))
	defer srv.Close()

	require.NoError(t, ollama.NewEngine(srv.URL, "llava").Load(context.Background()))
	require.NoError(t, ollama.NewEngine(srv.URL+"/", "moondream:1.8b").Load(context.Background()))
	require.Error(t, ollama.NewEngine(srv.URL, "bakllava").Load(context.Background()))
}

func TestComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"model":"llava","response":"Hello\nWorld","done":true,"done_reason":"stop",
			"context":[1,2,3],"prompt_eval_count":20,"eval_count":5}`)
	}))
	defer srv.Close()

	img := models.Image{Raw: models.RawImage{Bytes: []byte("abc"), Format: models.FormatJPEG}}
	out, err := ollama.NewEngine(srv.URL, "llava").Complete(context.Background(), prompting.OCR("en"), img)
	require.NoError(t, err)
	require.Equal(t, "Hello\nWorld", out.Text)
	require.Equal(t, "stop", out.FinishReason)
	require.Equal(t, int64(20), out.PromptTokens)
	require.Equal(t, int64(5), out.CompletionTokens)

	require.Equal(t, "llava", got["model"])
	require.Equal(t, prompting.OCRInstruction, got["prompt"])
	require.Equal(t, []any{"YWJj"}, got["images"])
	require.Equal(t, false, got["stream"])
	opts := got["options"].(map[string]any)
	require.Equal(t, float64(0), opts["temperature"])
	require.Equal(t, float64(512), opts["num_predict"])
}

func TestCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := ollama.NewEngine(srv.URL, "llava").Complete(context.Background(), prompting.VQA(""), models.Image{})
	require.ErrorContains(t, err, "404")
	require.ErrorContains(t, err, "model not found")
}
