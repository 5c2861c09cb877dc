package stats

import (
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
)

// Counter fields of the single well-known Totals document.
const (
	FieldTotalUsers       = "totalUsers"
	FieldTotalCourses     = "totalCourses"
	FieldTotalEnrollments = "totalEnrollments"
)

type (
	// Totals is the aggregate counters document. It is upserted lazily on the
	// first increment and only ever read back by external dashboards.
	Totals struct {
		ID               string `json:"id" bson:"_id,omitempty"`
		TotalUsers       int64  `json:"totalUsers" bson:"totalUsers"`
		TotalCourses     int64  `json:"totalCourses" bson:"totalCourses"`
		TotalEnrollments int64  `json:"totalEnrollments" bson:"totalEnrollments"`
	}

	Repository interface {
		// IncrementField atomically adds n to the named counter, creating the
		// document if absent.
		IncrementField(field string, n int64) error
		GetTotals() (Totals, error)
	}

	// Incrementer is the fire-and-forget counter contract workflow services
	// depend on.
	Incrementer interface {
		Increment(field string, n int64)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

var _ Incrementer = (*Service)(nil)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Increment bumps the named counter. Failures are logged and swallowed; a
// stats write must never fail the workflow step that triggered it.
func (svc *Service) Increment(field string, n int64) {
	if err := svc.repo.IncrementField(field, n); err != nil {
		svc.logger.Error("incrementing stats counter", errors.Wrap(err, field))
	}
}

// Totals returns the counters document for dashboard reads.
func (svc *Service) Totals() (Totals, error) {
	return svc.repo.GetTotals()
}
