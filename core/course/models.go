package course

import (
	"time"

	"github.com/edumanage/backend/core"
)

// Status is the lifecycle state of a Course.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// reviewRank orders the admin review list: pending first, then approved,
// then rejected. Ties keep natural storage order.
var reviewRank = map[Status]int{
	StatusPending:  0,
	StatusApproved: 1,
	StatusRejected: 2,
}

// Course is a teachable offering owned by a teacher's email.
// TotalEnrollment only ever grows.
type Course struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description" bson:"description"`
	Image           string    `json:"image" bson:"image"`
	Price           float64   `json:"price" bson:"price"`
	TeacherName     string    `json:"teacher_name" bson:"teacher_name"`
	TeacherEmail    string    `json:"teacher_email" bson:"teacher_email"`
	Status          Status    `json:"status" bson:"status"`
	TotalEnrollment int64     `json:"totalEnrollment" bson:"totalEnrollment"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// Enrollment joins a student email to a Course. Created on enroll, never
// mutated or deleted.
type Enrollment struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	CourseID     string    `json:"course_id" bson:"course_id"`
	StudentEmail string    `json:"student_email" bson:"student_email"`
	EnrolledAt   time.Time `json:"enrolled_at" bson:"enrolled_at"` // UTC
}

// NewCourse contains information needed to create a Course.
type NewCourse struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Price        float64 `json:"price" validate:"gte=0"`
	TeacherName  string  `json:"teacher_name" validate:"required"`
	TeacherEmail string  `json:"teacher_email" validate:"required,email"`
}

func (nc *NewCourse) Validate(svc *Service) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.TeacherName = core.CleanString(nc.TeacherName)
	nc.TeacherEmail = core.CleanString(nc.TeacherEmail, true /* lower */)
	return svc.validate.Struct(nc)
}

// UpdateCourse defines the fields that may be merged into an existing Course.
// Nil fields are left untouched; the merge happens regardless of the Course's
// current status.
type UpdateCourse struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (uc *UpdateCourse) Validate(svc *Service) error {
	if uc.Title != nil {
		t := core.CleanString(*uc.Title)
		uc.Title = &t
	}
	if uc.Description != nil {
		d := core.CleanString(*uc.Description)
		uc.Description = &d
	}
	return svc.validate.Struct(uc)
}

func (uc *UpdateCourse) IsEmpty() bool {
	return uc.Title == nil && uc.Description == nil && uc.Image == nil && uc.Price == nil
}
