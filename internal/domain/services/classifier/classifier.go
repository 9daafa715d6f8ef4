// Package classifier wraps the external scam classification model as a
// black-box capability: text in, a (safe, scam) probability pair out.
package classifier

import (
	"context"
	"errors"
	"strings"

	"prism-lab/internal/domain/models"
)

// ErrUnavailable is returned when no model is reachable. There is no
// numeric fallback: the whole analysis fails on this error.
var ErrUnavailable = errors.New("classifier unavailable: no model loaded")

// Classifier is the black-box model contract. Implementations must be safe
// for concurrent use; wrap non-reentrant backends with Serialized.
type Classifier interface {
	Predict(ctx context.Context, text string) (models.ClassifierOutput, error)
}

// DefaultMaxLength is the token budget the model was trained with.
const DefaultMaxLength = 128

// Truncate bounds text to at most maxLength whitespace tokens, the same
// input budget the model tokenizer enforces.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	fields := strings.Fields(text)
	if len(fields) <= maxLength {
		return text
	}
	return strings.Join(fields[:maxLength], " ")
}
