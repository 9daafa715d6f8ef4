package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"prism-lab/internal/domain/models"
	"prism-lab/internal/domain/services/classifier"
	"prism-lab/internal/domain/services/translate"
	"prism-lab/pkg/logger"
)

// ErrEmptyMessage rejects empty or whitespace-only input before any
// pipeline stage runs.
var ErrEmptyMessage = errors.New("message text is empty")

// URLScanner is the deep-scan capability the analyzer hands extracted
// URLs to. Scan never fails: malformed URLs and degraded checks are
// reported inside the verdict.
type URLScanner interface {
	Scan(ctx context.Context, rawURL string) models.URLVerdict
}

// MessageAnalyzer runs the full message pipeline: normalize, identify
// language, translate when needed, extract keywords and entities, classify,
// fuse, explain, and deep-scan any URLs found.
type MessageAnalyzer struct {
	normalizer *Normalizer
	language   *LanguageIdentifier
	keywords   *KeywordExtractor
	entities   *EntityExtractor
	classifier classifier.Classifier
	translator translate.Translator
	urlScanner URLScanner

	targetLang    string
	maxConcurrent int
	logger        *logger.Logger
}

// AnalyzerOption customises a MessageAnalyzer
type AnalyzerOption func(*MessageAnalyzer)

// WithURLScanner enables deep URL scanning on analysis results.
func WithURLScanner(s URLScanner) AnalyzerOption {
	return func(a *MessageAnalyzer) { a.urlScanner = s }
}

// WithTranslator enables translation of non-target-language input.
func WithTranslator(t translate.Translator) AnalyzerOption {
	return func(a *MessageAnalyzer) { a.translator = t }
}

// WithMaxConcurrent bounds parallel work in batch analysis and URL scans.
func WithMaxConcurrent(n int) AnalyzerOption {
	return func(a *MessageAnalyzer) {
		if n > 0 {
			a.maxConcurrent = n
		}
	}
}

// NewMessageAnalyzer creates the analyzer over a classifier backend.
func NewMessageAnalyzer(cls classifier.Classifier, table *CategoryTable, log *logger.Logger, opts ...AnalyzerOption) *MessageAnalyzer {
	a := &MessageAnalyzer{
		normalizer:    NewNormalizer(),
		language:      NewLanguageIdentifier(),
		keywords:      NewKeywordExtractor(table),
		entities:      NewEntityExtractor(),
		classifier:    cls,
		targetLang:    "en",
		maxConcurrent: 5,
		logger:        log.WithComponent("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline for one message. It returns
// ErrEmptyMessage for blank input and classifier.ErrUnavailable when no
// model signal could be obtained; every other stage degrades instead of
// failing.
func (a *MessageAnalyzer) Analyze(ctx context.Context, msg models.Message) (*models.RiskVerdict, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return nil, ErrEmptyMessage
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	cleaned := a.normalizer.Normalize(msg.Text)
	langCode := a.language.Detect(cleaned)

	// The model is English-trained: translate everything else, best-effort.
	// On any translation failure the original text goes to the model as-is.
	modelText := cleaned
	if a.translator != nil && langCode != a.targetLang && langCode != LanguageUnknown {
		translated, err := a.translator.Translate(ctx, cleaned, langCode)
		if err != nil {
			a.logger.Warn().Err(err).Str("language", langCode).Msg("translation failed, using original text")
		} else {
			modelText = translated
		}
	}

	extraction := a.keywords.Extract(modelText)

	// Entities come from the original text: translation mangles URLs and
	// phone numbers.
	urls := a.entities.ExtractURLs(msg.Text)
	phones := a.entities.ExtractPhoneNumbers(msg.Text)

	prediction, err := a.classifier.Predict(ctx, modelText)
	if err != nil {
		if errors.Is(err, classifier.ErrUnavailable) {
			a.logger.Error().Err(err).Str("message_id", msg.ID.String()).Msg("classifier unavailable")
			return nil, err
		}
		return nil, err
	}

	keywordCount := 0
	for _, n := range extraction.CategoryCounts {
		keywordCount += n
	}

	score := FuseRiskScore(prediction.Scam, keywordCount, len(urls) > 0, len(phones) > 0)

	verdict := &models.RiskVerdict{
		ID:           msg.ID,
		Text:         msg.Text,
		Source:       msg.Source,
		Language:     LanguageName(langCode),
		LanguageCode: langCode,
		Prediction:   RiskLevelForScore(score),
		RiskScore:    score,
		Confidence: models.Confidence{
			Safe: roundPercent(prediction.Safe),
			Scam: roundPercent(prediction.Scam),
		},
		SuspiciousKeywords: extraction.Keywords,
		KeywordCategories:  extraction.CategoryCounts,
		URLsFound:          urls,
		PhoneNumbersFound:  phones,
		Indicators: models.Indicators{
			HasUrgency:           extraction.CategoryCounts[CategoryUrgency] > 0,
			HasFinancialTerms:    extraction.CategoryCounts[CategoryFinancial] > 0,
			HasActionRequired:    extraction.CategoryCounts[CategoryAction] > 0,
			HasThreats:           extraction.CategoryCounts[CategoryThreats] > 0,
			RequestsPersonalInfo: extraction.CategoryCounts[CategoryPersonalInfo] > 0,
			ContainsURLs:         len(urls) > 0,
			ContainsPhone:        len(phones) > 0,
		},
		AnalyzedAt: time.Now().UTC(),
	}
	verdict.Explanation = Explain(verdict)

	if a.urlScanner != nil && len(urls) > 0 {
		verdict.URLVerdicts = a.scanURLs(ctx, urls)
	}

	return verdict, nil
}

// AnalyzeBatch analyzes messages in parallel, bounded by maxConcurrent.
// Results keep input order; a failed message yields a nil verdict and its
// error at the same index.
func (a *MessageAnalyzer) AnalyzeBatch(ctx context.Context, msgs []models.Message) ([]*models.RiskVerdict, []error) {
	verdicts := make([]*models.RiskVerdict, len(msgs))
	errs := make([]error, len(msgs))

	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup

	for i, msg := range msgs {
		wg.Add(1)
		go func(i int, msg models.Message) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			verdicts[i], errs[i] = a.Analyze(ctx, msg)
		}(i, msg)
	}
	wg.Wait()

	return verdicts, errs
}

// scanURLs fans extracted URLs out to the deep scanner, bounded by the
// same concurrency limit as batch analysis. Verdict order matches URL
// extraction order.
func (a *MessageAnalyzer) scanURLs(ctx context.Context, urls []string) []models.URLVerdict {
	results := make([]models.URLVerdict, len(urls))

	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = a.urlScanner.Scan(ctx, u)
		}(i, u)
	}
	wg.Wait()

	return results
}

// roundPercent converts a probability to a percentage with two decimals.
func roundPercent(p float64) float64 {
	return math.Round(p*10000) / 100
}
