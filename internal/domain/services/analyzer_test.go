package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism-lab/internal/domain/models"
	"prism-lab/internal/domain/services/classifier"
	"prism-lab/pkg/logger"
)

func newTestAnalyzer(t *testing.T, cls classifier.Classifier, opts ...AnalyzerOption) *MessageAnalyzer {
	t.Helper()
	return NewMessageAnalyzer(cls, DefaultCategoryTable(), logger.NewDefault(), opts...)
}

func TestAnalyzeScamMessage(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.1, Scam: 0.9}}
	a := newTestAnalyzer(t, cls)

	verdict, err := a.Analyze(context.Background(), models.Message{
		Text: "URGENT: your bank account is suspended, verify at http://192.168.1.1/login.php or call 9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelScam, verdict.Prediction)
	assert.GreaterOrEqual(t, verdict.RiskScore, 70)
	assert.Equal(t, "en", verdict.LanguageCode)
	assert.Equal(t, "English", verdict.Language)
	assert.Equal(t, []string{"http://192.168.1.1/login.php"}, verdict.URLsFound)
	assert.Contains(t, verdict.PhoneNumbersFound, "9876543210")
	assert.True(t, verdict.Indicators.HasUrgency)
	assert.True(t, verdict.Indicators.ContainsURLs)
	assert.True(t, verdict.Indicators.ContainsPhone)
	assert.NotEmpty(t, verdict.Explanation)
	assert.InDelta(t, 90.0, verdict.Confidence.Scam, 0.001)
	assert.False(t, verdict.AnalyzedAt.IsZero())
}

func TestAnalyzeSafeMessage(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.98, Scam: 0.02}}
	a := newTestAnalyzer(t, cls)

	verdict, err := a.Analyze(context.Background(), models.Message{
		Text: "see you at dinner tonight",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelSafe, verdict.Prediction)
	assert.Equal(t, 1, verdict.RiskScore)
	assert.Empty(t, verdict.SuspiciousKeywords)
	assert.Empty(t, verdict.URLsFound)
}

func TestAnalyzeEmptyMessage(t *testing.T) {
	a := newTestAnalyzer(t, &classifier.Mock{})

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := a.Analyze(context.Background(), models.Message{Text: text})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
}

func TestAnalyzeClassifierUnavailableIsFatal(t *testing.T) {
	a := newTestAnalyzer(t, &classifier.Mock{Err: classifier.ErrUnavailable})

	verdict, err := a.Analyze(context.Background(), models.Message{Text: "hello there friend"})
	assert.Nil(t, verdict)
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestAnalyzeHindiMessage(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.3, Scam: 0.7}}
	a := newTestAnalyzer(t, cls)

	verdict, err := a.Analyze(context.Background(), models.Message{
		Text: "तुरंत अपना बैंक खाता सत्यापित करें",
	})
	require.NoError(t, err)

	assert.Equal(t, "hi", verdict.LanguageCode)
	assert.True(t, verdict.Indicators.HasUrgency)
	assert.True(t, verdict.Indicators.HasFinancialTerms)
}

// failingTranslator always errors; analysis must fall back to the original
// text instead of failing.
type failingTranslator struct{}

func (failingTranslator) Translate(_ context.Context, _, _ string) (string, error) {
	return "", assert.AnError
}

func TestAnalyzeTranslationFailureDegrades(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.5, Scam: 0.5}}
	a := newTestAnalyzer(t, cls, WithTranslator(failingTranslator{}))

	verdict, err := a.Analyze(context.Background(), models.Message{
		Text: "तुरंत बैंक खाता सत्यापित करें",
	})
	require.NoError(t, err)

	// Keywords still match on the untranslated text via the multilingual table.
	assert.Equal(t, "hi", verdict.LanguageCode)
	assert.True(t, verdict.Indicators.HasUrgency)
}

// stubScanner returns a fixed verdict per URL without any network I/O.
type stubScanner struct{}

func (stubScanner) Scan(_ context.Context, rawURL string) models.URLVerdict {
	return models.URLVerdict{URL: rawURL, RiskScore: 80, RiskLevel: models.URLRiskHigh}
}

func TestAnalyzeScansExtractedURLs(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.5, Scam: 0.5}}
	a := newTestAnalyzer(t, cls, WithURLScanner(stubScanner{}))

	verdict, err := a.Analyze(context.Background(), models.Message{
		Text: "check http://a.example and http://b.example now",
	})
	require.NoError(t, err)

	require.Len(t, verdict.URLVerdicts, 2)
	assert.Equal(t, "http://a.example", verdict.URLVerdicts[0].URL)
	assert.Equal(t, "http://b.example", verdict.URLVerdicts[1].URL)
}

func TestAnalyzeBatchKeepsOrder(t *testing.T) {
	cls := &classifier.Mock{Fixed: &models.ClassifierOutput{Safe: 0.9, Scam: 0.1}}
	a := newTestAnalyzer(t, cls, WithMaxConcurrent(2))

	msgs := []models.Message{
		{Text: "first message here"},
		{Text: ""},
		{Text: "third message here"},
	}

	verdicts, errs := a.AnalyzeBatch(context.Background(), msgs)
	require.Len(t, verdicts, 3)

	assert.NoError(t, errs[0])
	assert.Equal(t, "first message here", verdicts[0].Text)
	assert.ErrorIs(t, errs[1], ErrEmptyMessage)
	assert.Nil(t, verdicts[1])
	assert.NoError(t, errs[2])
	assert.Equal(t, "third message here", verdicts[2].Text)
}
