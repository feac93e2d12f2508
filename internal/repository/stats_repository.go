package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/lehoangphuc/notary-office-server/internal/model"
)

// DashboardStats aggregates the numbers shown on the office dashboard.
// Revenue counts only completed files since fees are collected at
// notarization.
type DashboardStats struct {
	TotalFiles      int64 `json:"totalFiles"`
	CompletedFiles  int64 `json:"completedFiles"`
	PendingFiles    int64 `json:"pendingFiles"`
	TotalRevenueVND int64 `json:"totalRevenueVnd"`
	TotalParties    int64 `json:"totalParties"`
	TotalAssets     int64 `json:"totalAssets"`
	MonthlyGrowth   int   `json:"monthlyGrowth"` // percent, current vs previous month file count
}

// StatsRepo runs the aggregate queries behind the dashboard endpoints.
type StatsRepo struct{ db *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// GrowthPercentage returns the rounded percentage change from previous
// to current. A previous month with no files counts as 100% growth
// whenever the current month has any.
func GrowthPercentage(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// Dashboard collects file, party and asset aggregates in one pass.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = ? THEN 1 END),
		       COUNT(CASE WHEN status = ? THEN 1 END),
		       COALESCE(SUM(CASE WHEN status = ? THEN total_fee_vnd ELSE 0 END), 0)
		FROM notary_files`,
		model.StatusCompleted, model.StatusPending, model.StatusCompleted).
		Scan(&s.TotalFiles, &s.CompletedFiles, &s.PendingFiles, &s.TotalRevenueVND)
	if err != nil {
		return DashboardStats{}, err
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parties").Scan(&s.TotalParties); err != nil {
		return DashboardStats{}, err
	}
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets").Scan(&s.TotalAssets); err != nil {
		return DashboardStats{}, err
	}

	var current, previous int64
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(CASE WHEN MONTH(created_at) = MONTH(CURDATE())
		                   AND YEAR(created_at) = YEAR(CURDATE()) THEN 1 END),
		       COUNT(CASE WHEN MONTH(created_at) = MONTH(CURDATE() - INTERVAL 1 MONTH)
		                   AND YEAR(created_at) = YEAR(CURDATE() - INTERVAL 1 MONTH) THEN 1 END)
		FROM notary_files
		WHERE created_at >= DATE_SUB(CURDATE(), INTERVAL 2 MONTH)`).
		Scan(&current, &previous)
	if err != nil {
		return DashboardStats{}, err
	}
	s.MonthlyGrowth = GrowthPercentage(current, previous)
	return s, nil
}

// RecentFiles returns the latest files for the dashboard feed.
func (r *StatsRepo) RecentFiles(ctx context.Context, limit int) ([]model.NotaryFile, error) {
	rows, err := r.db.QueryContext(ctx,
		fileSelect+" ORDER BY f.created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.NotaryFile, 0, limit)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
