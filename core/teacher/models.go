package teacher

import (
	"time"

	"github.com/edumanage/backend/core"
)

// Status is the lifecycle state of a teacher application.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a teacher application owned by the applicant's email.
// Nothing prevents several pending Requests for the same email; the store is
// taken as-is and duplicates are surfaced to admins unmerged.
type Request struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	Experience string    `json:"experience" bson:"experience"`
	Category   string    `json:"category" bson:"category"`
	Status     Status    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// ApprovedTeacher is the promoted copy of an approved Request.
type ApprovedTeacher struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Name       string    `json:"name" bson:"name"`
	Experience string    `json:"experience" bson:"experience"`
	Category   string    `json:"category" bson:"category"`
	ApprovedAt time.Time `json:"approved_at" bson:"approved_at"` // UTC
}

// NewRequest contains information needed to submit a teacher application.
type NewRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Experience string `json:"experience"`
	Category   string `json:"category"`
}

func (nr *NewRequest) Validate(svc *Service) error {
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.Name = core.CleanString(nr.Name)
	nr.Experience = core.CleanString(nr.Experience)
	nr.Category = core.CleanString(nr.Category)
	return svc.validate.Struct(nr)
}
