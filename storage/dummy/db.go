package dummydb

import (
	"sync"

	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/feedback"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
)

type (
	DB struct {
		user       *userTable
		teacher    *teacherTable
		course     *courseTable
		assignment *assignmentTable
		feedback   *feedbackTable
		stats      *statsTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
		order []string
	}

	teacherTable struct {
		sync.RWMutex
		requests map[string]*teacher.Request
		approved map[string]*teacher.ApprovedTeacher
		order    []string
	}

	courseTable struct {
		sync.RWMutex
		courses     map[string]*course.Course
		enrollments map[string]*course.Enrollment
		order       []string
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
	}

	feedbackTable struct {
		sync.RWMutex
		table map[string]*feedback.Feedback
		order []string
	}

	statsTable struct {
		sync.RWMutex
		counters map[string]int64
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		teacher:    &teacherTable{requests: make(map[string]*teacher.Request), approved: make(map[string]*teacher.ApprovedTeacher)},
		course:     &courseTable{courses: make(map[string]*course.Course), enrollments: make(map[string]*course.Enrollment)},
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment)},
		feedback:   &feedbackTable{table: make(map[string]*feedback.Feedback)},
		stats:      &statsTable{counters: make(map[string]int64)},
	}
	return db, nil
}
