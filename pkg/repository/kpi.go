package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/kippino/pkg/domain"
)

// KPIRepository reads and writes KPI definitions
type KPIRepository struct {
	db *sqlx.DB
}

// kpiSQL represents a kpis row for SQL operations, all text columns parsed
// leniently on the way out
type kpiSQL struct {
	Name      string `db:"name"`
	Question  string `db:"question"`
	Owner     string `db:"owner"`
	Frequency string `db:"frequency"`
	Since     string `db:"since"`
	Enabled   string `db:"enabled"`
}

// NewKPIRepository creates a new KPI repository
func NewKPIRepository(database *sqlx.DB) *KPIRepository {
	return &KPIRepository{db: database}
}

// ListKPIs returns all KPI definitions, in definition order. Rows with a
// malformed frequency or anchor date are logged and skipped rather than
// failing the whole load.
func (r *KPIRepository) ListKPIs(ctx context.Context) ([]domain.KPI, error) {
	var rows []kpiSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM kpis ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("list kpis: %w", err)
	}

	kpis := make([]domain.KPI, 0, len(rows))
	for _, row := range rows {
		kpi, err := r.toDomainKPI(&row)
		if err != nil {
			lgr.Printf("[WARN] skipping kpi %q: %v", row.Name, err)
			continue
		}
		kpis = append(kpis, kpi)
	}
	return kpis, nil
}

// CreateKPI inserts a new KPI definition
func (r *KPIRepository) CreateKPI(ctx context.Context, kpi domain.KPI) error {
	row := kpiSQL{
		Name:      kpi.Name,
		Question:  kpi.Question,
		Owner:     kpi.Owner,
		Frequency: kpi.Frequency.Label(),
		Since:     kpi.Since.Format(domain.DateLayout),
		Enabled:   enabledLabel(kpi.Enabled),
	}

	query := `
		INSERT INTO kpis (name, question, owner, frequency, since, enabled)
		VALUES (:name, :question, :owner, :frequency, :since, :enabled)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create kpi: %w", err)
	}
	return nil
}

// toDomainKPI converts a SQL row to the domain type
func (r *KPIRepository) toDomainKPI(row *kpiSQL) (domain.KPI, error) {
	freq, err := domain.ParseFrequency(row.Frequency)
	if err != nil {
		return domain.KPI{}, err
	}

	since, err := domain.ParseDate(row.Since)
	if err != nil {
		return domain.KPI{}, err
	}

	return domain.KPI{
		Name:      row.Name,
		Question:  row.Question,
		Owner:     row.Owner,
		Frequency: freq,
		Since:     since,
		Enabled:   parseEnabled(row.Enabled),
	}, nil
}

// parseEnabled treats "yes" and "true" (case-insensitive) as enabled,
// anything else as disabled
func parseEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true
	}
	return false
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
