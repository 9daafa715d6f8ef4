// Package translate adapts non-English input into the English text the
// classification model expects. Translation is best-effort: callers fall
// back to the original text on any failure.
package translate

import "context"

// Translator converts text in the detected source language to the target
// language configured for the model.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang string) (string, error)
}

// Noop passes text through unchanged. Used when translation is disabled
// or the input is already in the target language.
type Noop struct{}

func (Noop) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
