package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/kippino/pkg/domain"
)

// AnswerRepository reads and appends collected KPI values
type AnswerRepository struct {
	db *sqlx.DB
}

// AnswerRecord is one stored answer row
type AnswerRecord struct {
	Timestamp time.Time
	KPI       string
	Value     float64
	ForDate   time.Time // start date of the answered period
	Source    string    // user who answered
}

// answerSQL represents an answers row for SQL operations
type answerSQL struct {
	ID        int64   `db:"id"`
	Timestamp string  `db:"timestamp"`
	KPI       string  `db:"kpi"`
	Value     float64 `db:"value"`
	ForDate   string  `db:"for_date"`
	Source    string  `db:"source"`
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(database *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: database}
}

// Append stores a collected KPI value. Retries on transient SQLite lock
// errors, any other failure surfaces immediately.
func (r *AnswerRepository) Append(ctx context.Context, update domain.Update) error {
	row := answerSQL{
		Timestamp: update.Timestamp.UTC().Format(time.RFC3339),
		KPI:       update.KPI.Name,
		Value:     update.Value,
		ForDate:   update.Period.Start().Format(domain.DateLayout),
		Source:    update.User.Name,
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO answers (timestamp, kpi, value, for_date, source)
			VALUES (:timestamp, :kpi, :value, :for_date, :source)
		`
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("append answer: %w", err)}
		}
		return nil
	})
}

// LastAnswered returns, per KPI name, the latest answered period-start date.
// The maximum is computed in SQL instead of trusting any row order coming
// out of the store. Rows missing the kpi or for_date, or missing both source
// and timestamp, don't count, and neither do rows whose for_date is not a
// well-formed yyyy-mm-dd - a garbage date sorts above real ones in TEXT and
// would otherwise shadow the valid history under the aggregate.
func (r *AnswerRepository) LastAnswered(ctx context.Context) (map[string]time.Time, error) {
	query := `
		SELECT kpi, MAX(for_date) AS for_date
		FROM answers
		WHERE kpi != '' AND NOT (source = '' AND timestamp = '')
			AND for_date GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
		GROUP BY kpi
	`
	var rows []struct {
		KPI     string `db:"kpi"`
		ForDate string `db:"for_date"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("last answered: %w", err)
	}

	res := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		d, err := domain.ParseDate(row.ForDate)
		if err != nil {
			lgr.Printf("[WARN] failed to parse last evaluated date %q for kpi %q", row.ForDate, row.KPI)
			continue
		}
		res[row.KPI] = d
	}
	return res, nil
}

// ListAnswers returns all valid answer rows, newest period first. Invalid
// rows are logged and dropped.
func (r *AnswerRepository) ListAnswers(ctx context.Context) ([]AnswerRecord, error) {
	query := `
		SELECT id, timestamp, kpi, value, for_date, source
		FROM answers
		WHERE kpi != '' AND for_date != '' AND NOT (source = '' AND timestamp = '')
		ORDER BY for_date DESC, id DESC
	`
	var rows []answerSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	res := make([]AnswerRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toAnswerRecord(&row)
		if err != nil {
			lgr.Printf("[WARN] skipping answer row %d: %v", row.ID, err)
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func toAnswerRecord(row *answerSQL) (AnswerRecord, error) {
	forDate, err := domain.ParseDate(row.ForDate)
	if err != nil {
		return AnswerRecord{}, err
	}

	// timestamp may legitimately be empty when source is set
	var ts time.Time
	if row.Timestamp != "" {
		if ts, err = time.Parse(time.RFC3339, row.Timestamp); err != nil {
			return AnswerRecord{}, fmt.Errorf("parse timestamp %q: %w", row.Timestamp, err)
		}
	}

	return AnswerRecord{
		Timestamp: ts,
		KPI:       row.KPI,
		Value:     row.Value,
		ForDate:   forDate,
		Source:    row.Source,
	}, nil
}
