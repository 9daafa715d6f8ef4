package classifier

import (
	"context"
	"sync"

	"prism-lab/internal/domain/models"
)

// Serialized wraps a non-reentrant backend so only one Predict call runs
// at a time. In-process model runtimes are typically single-session; the
// HTTP service stays concurrent and does not need this wrapper.
type Serialized struct {
	mu      sync.Mutex
	backend Classifier
}

// NewSerialized wraps backend with call serialization.
func NewSerialized(backend Classifier) *Serialized {
	return &Serialized{backend: backend}
}

func (s *Serialized) Predict(ctx context.Context, text string) (models.ClassifierOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Predict(ctx, text)
}
