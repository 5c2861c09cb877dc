package dummydb

import "github.com/edumanage/backend/core/stats"

type statsRepository struct {
	db *statsTable
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db.stats}
}

func (repo *statsRepository) IncrementField(field string, n int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.counters[field] += n
	return nil
}

func (repo *statsRepository) GetTotals() (stats.Totals, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return stats.Totals{
		ID:               "totals",
		TotalUsers:       repo.db.counters[stats.FieldTotalUsers],
		TotalCourses:     repo.db.counters[stats.FieldTotalCourses],
		TotalEnrollments: repo.db.counters[stats.FieldTotalEnrollments],
	}, nil
}
