package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"prism-lab/internal/domain/models"
)

// ReportRepository persists analysis verdicts. The store is append-only:
// verdicts are immutable once produced and are never updated.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// SaveMessageReport inserts one message verdict.
func (r *ReportRepository) SaveMessageReport(ctx context.Context, v *models.RiskVerdict) error {
	keywords, err := json.Marshal(v.SuspiciousKeywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}
	categories, err := json.Marshal(v.KeywordCategories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	source := v.Source
	if source == "" {
		source = models.MessageSourceText
	}

	query := `
		INSERT INTO reports (
			id, message_text, source, language_code, prediction, risk_score,
			confidence_safe, confidence_scam, keywords, keyword_categories,
			url_count, phone_count, analyzed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	_, err = r.pool.Exec(ctx, query,
		v.ID, v.Text, string(source), v.LanguageCode, string(v.Prediction), v.RiskScore,
		v.Confidence.Safe, v.Confidence.Scam, keywords, categories,
		len(v.URLsFound), len(v.PhoneNumbersFound), v.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save message report: %w", err)
	}
	return nil
}

// SaveURLReport inserts one URL verdict.
func (r *ReportRepository) SaveURLReport(ctx context.Context, v *models.URLVerdict) error {
	warnings, err := json.Marshal(v.Warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}

	query := `
		INSERT INTO url_reports (
			id, url, domain, risk_score, risk_level, is_safe,
			warnings, checked_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err = r.pool.Exec(ctx, query,
		uuid.New(), v.URL, v.DomainInfo.Domain, v.RiskScore,
		string(v.RiskLevel), v.IsSafe, warnings, v.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save url report: %w", err)
	}
	return nil
}

// CountByPrediction returns how many stored reports carry each verdict level.
func (r *ReportRepository) CountByPrediction(ctx context.Context) (map[string]int64, error) {
	query := `SELECT prediction, COUNT(*) FROM reports GROUP BY prediction`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var prediction string
		var count int64
		if err := rows.Scan(&prediction, &count); err != nil {
			return nil, fmt.Errorf("failed to scan report count: %w", err)
		}
		counts[prediction] = count
	}
	return counts, rows.Err()
}
