package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Repository interface {
		CreateAssignment(asg Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		QueryAssignmentsByCourse(courseID string) ([]Assignment, error)
		// IncrementSubmission unconditionally bumps the per-day counter and
		// overwrites the stored submission date. Reports ErrNotFound when no
		// document was matched.
		IncrementSubmission(id, date string) error
		// IncrementSubmissionOnce only bumps the counter when the stored
		// submission date differs from date; a same-day repeat is a no-op.
		// Reports ErrNotFound when the assignment does not exist.
		IncrementSubmissionOnce(id, date string) error
		// GetAssignmentSubmittedOn fetches the assignment only when its stored
		// submission date equals date. Reports ErrNotFound otherwise.
		GetAssignmentSubmittedOn(id, date string) (Assignment, error)
	}

	Service struct {
		repo     Repository
		strict   bool
		validate *validator.Validate
	}
)

// NewService builds the assignment service. strict selects the guarded
// at-most-once-per-day submission semantics; the default (false) preserves the
// historical unconditional increment.
func NewService(repo Repository, strict bool, validate *validator.Validate) *Service {
	return &Service{repo: repo, strict: strict, validate: validate}
}

// Create adds an Assignment to a Course.
func (svc *Service) Create(courseID string, na NewAssignment) (Assignment, error) {
	return svc.repo.CreateAssignment(Assignment{
		CourseID:    courseID,
		Title:       na.Title,
		Description: na.Description,
		Deadline:    na.Deadline,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) GetByID(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *Service) QueryByCourse(courseID string) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByCourse(courseID)
}

// RecordSubmission bumps the assignment's per-day submission counter for
// today's campus-timezone date. In strict mode a same-day repeat does not
// increment again.
func (svc *Service) RecordSubmission(id string) error {
	today := Today()
	if svc.strict {
		return svc.repo.IncrementSubmissionOnce(id, today)
	}
	return svc.repo.IncrementSubmission(id, today)
}

// TodaysSubmission returns the assignment when its last submission happened
// today, nil otherwise.
func (svc *Service) TodaysSubmission(id string) (*Assignment, error) {
	asg, err := svc.repo.GetAssignmentSubmittedOn(id, Today())
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &asg, nil
}
