package course

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/stats"
)

// PopularCoursesLimit caps the popular-courses listing.
const PopularCoursesLimit = 5

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		CreateCourse(crs Course) (Course, error)
		GetCourseByID(id string) (Course, error)
		QueryAllCourses() ([]Course, error)
		// QueryPopularCourses returns at most limit courses ordered by
		// TotalEnrollment, highest first.
		QueryPopularCourses(limit int64) ([]Course, error)
		// SetCourseStatus reports ErrNotFound when no document was modified.
		SetCourseStatus(id string, status Status) error
		// UpdateCourse merges the non-nil fields of uc into the stored document.
		// Reports ErrNotFound when no document was matched.
		UpdateCourse(id string, uc UpdateCourse) (Course, error)
		// DeleteCourse reports ErrNotFound when no document was deleted.
		DeleteCourse(id string) error
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		// IncrementEnrollment reports ErrNotFound when no document was modified.
		IncrementEnrollment(id string) error
	}

	Service struct {
		repo     Repository
		stats    stats.Incrementer
		validate *validator.Validate
	}
)

func NewService(repo Repository, stats stats.Incrementer, validate *validator.Validate) *Service {
	return &Service{repo: repo, stats: stats, validate: validate}
}

// Create inserts a new Course in the pending state.
func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	return svc.repo.CreateCourse(Course{
		Title:        nc.Title,
		Description:  nc.Description,
		Image:        nc.Image,
		Price:        nc.Price,
		TeacherName:  nc.TeacherName,
		TeacherEmail: nc.TeacherEmail,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Popular() ([]Course, error) {
	return svc.repo.QueryPopularCourses(PopularCoursesLimit)
}

// ListForReview returns all courses ordered pending, approved, rejected;
// ties keep the store's natural order.
func (svc *Service) ListForReview() ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return reviewRank[courses[i].Status] < reviewRank[courses[j].Status]
	})
	return courses, nil
}

// Approve moves the Course to the approved state, then best-effort bumps the
// totalCourses counter. The counter increment is independent of the status
// write and is never rolled back.
func (svc *Service) Approve(id string) error {
	if err := svc.repo.SetCourseStatus(id, StatusApproved); err != nil {
		return err
	}
	svc.stats.Increment(stats.FieldTotalCourses, 1)
	return nil
}

// Reject moves the Course to the rejected state whatever its current state.
func (svc *Service) Reject(id string) error {
	return svc.repo.SetCourseStatus(id, StatusRejected)
}

// Update merges the supplied fields into the Course regardless of its status.
func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(id, uc)
}

// Delete removes the Course for good.
func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteCourse(id)
}

// Enroll records a student enrollment: the join record is inserted, the
// Course's TotalEnrollment is incremented and the totalEnrollments counter is
// best-effort bumped. The writes commit independently; a failed increment
// after the join record committed is reported as core.ErrPartialWrite.
func (svc *Service) Enroll(courseID, studentEmail string) (Enrollment, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Enrollment{}, err
	}

	enr, err := svc.repo.CreateEnrollment(Enrollment{
		CourseID:     courseID,
		StudentEmail: core.CleanString(studentEmail, true /* lower */),
		EnrolledAt:   time.Now().UTC(),
	})
	if err != nil {
		return Enrollment{}, errors.Wrap(err, "creating enrollment")
	}

	if err = svc.repo.IncrementEnrollment(courseID); err != nil {
		return Enrollment{}, errors.Wrapf(core.ErrPartialWrite, "incrementing enrollment for course %s: %v", courseID, err)
	}

	svc.stats.Increment(stats.FieldTotalEnrollments, 1)
	return enr, nil
}
