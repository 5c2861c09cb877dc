package feedback

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edumanage/backend/core"
)

// Feedback is a student review surfaced on the public landing page.
type Feedback struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Rating      float64   `json:"rating" bson:"rating"`
	Comment     string    `json:"comment" bson:"comment"`
	CourseTitle string    `json:"course_title" bson:"course_title"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"` // UTC
}

// NewFeedback contains information needed to leave a review.
type NewFeedback struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment     string  `json:"comment"`
	CourseTitle string  `json:"course_title"`
}

func (nf *NewFeedback) Validate(svc *Service) error {
	nf.Name = core.CleanString(nf.Name)
	nf.Email = core.CleanString(nf.Email, true /* lower */)
	nf.Comment = core.CleanString(nf.Comment)
	return svc.validate.Struct(nf)
}

type (
	Repository interface {
		CreateFeedback(fb Feedback) (Feedback, error)
		QueryAllFeedbacks() ([]Feedback, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(nf NewFeedback) (Feedback, error) {
	return svc.repo.CreateFeedback(Feedback{
		Name:        nf.Name,
		Email:       nf.Email,
		Rating:      nf.Rating,
		Comment:     nf.Comment,
		CourseTitle: nf.CourseTitle,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) QueryAll() ([]Feedback, error) {
	return svc.repo.QueryAllFeedbacks()
}
