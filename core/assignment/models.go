package assignment

import (
	"time"

	"github.com/edumanage/backend/core"
)

// Assignment belongs to a Course and tracks a per-day submission counter
// together with the calendar date (in the campus timezone) of the last
// submission.
type Assignment struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	CourseID         string    `json:"course_id" bson:"course_id"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	Deadline         string    `json:"deadline" bson:"deadline"`
	DailySubmissions int64     `json:"dailySubmissions" bson:"dailySubmissions"`
	SubmissionDate   string    `json:"submissionDate" bson:"submissionDate"` // YYYY-MM-DD, campus timezone
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`         // UTC
}

// NewAssignment contains information needed to add an Assignment to a Course.
type NewAssignment struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func (na *NewAssignment) Validate(svc *Service) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Deadline = core.CleanString(na.Deadline)
	return svc.validate.Struct(na)
}
