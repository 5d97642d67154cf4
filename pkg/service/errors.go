package service

import (
	"errors"
	"fmt"

	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

// ErrTaskNotFound is returned for an unknown or evicted OCR task id.
var ErrTaskNotFound = errors.New("task not found")

// InferenceError wraps any failure of the model backend.
type InferenceError struct {
	Task prompting.Task
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Task, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
