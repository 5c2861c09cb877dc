package assignment_test

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core/assignment"
	dummydb "github.com/edumanage/backend/storage/dummy"
)

func newTestService(t *testing.T, strict bool) *assignment.Service {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)
	return assignment.NewService(dummydb.NewAssignmentRepository(db), strict, validator.New())
}

// mockNow pins the clock and restores it when the test ends.
func mockNow(t *testing.T, at time.Time) {
	t.Helper()
	assignment.NowFunc = func() time.Time { return at }
	t.Cleanup(func() { assignment.NowFunc = time.Now })
}

func TestToday(t *testing.T) {
	// 20:00 UTC is already the next day on campus (UTC+6)
	mockNow(t, time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-01-02", assignment.Today())

	assignment.NowFunc = func() time.Time { return time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2026-01-01", assignment.Today())
}

func TestService_Create(t *testing.T) {
	svc := newTestService(t, false)

	asg, err := svc.Create("crs1", assignment.NewAssignment{Title: "Homework 1", Deadline: "2026-02-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, asg.ID)
	assert.Equal(t, "crs1", asg.CourseID)
	assert.Zero(t, asg.DailySubmissions)

	asgs, err := svc.QueryByCourse("crs1")
	require.NoError(t, err)
	assert.Len(t, asgs, 1)
}

func TestService_RecordSubmission(t *testing.T) {
	svc := newTestService(t, false)
	mockNow(t, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))

	asg, err := svc.Create("crs1", assignment.NewAssignment{Title: "Homework 1"})
	require.NoError(t, err)

	// every submission counts, repeats included
	require.NoError(t, svc.RecordSubmission(asg.ID))
	require.NoError(t, svc.RecordSubmission(asg.ID))

	got, err := svc.GetByID(asg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DailySubmissions)
	assert.Equal(t, "2026-01-01", got.SubmissionDate)

	assert.Equal(t, assignment.ErrNotFound, errors.Cause(svc.RecordSubmission("missing")))
}

func TestService_RecordSubmission_strict(t *testing.T) {
	svc := newTestService(t, true)
	mockNow(t, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))

	asg, err := svc.Create("crs1", assignment.NewAssignment{Title: "Homework 1"})
	require.NoError(t, err)

	// a same-day repeat is a no-op
	require.NoError(t, svc.RecordSubmission(asg.ID))
	require.NoError(t, svc.RecordSubmission(asg.ID))

	got, err := svc.GetByID(asg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.DailySubmissions)

	// the next day counts again
	assignment.NowFunc = func() time.Time { return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.RecordSubmission(asg.ID))

	got, err = svc.GetByID(asg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DailySubmissions)
	assert.Equal(t, "2026-01-02", got.SubmissionDate)

	assert.Equal(t, assignment.ErrNotFound, errors.Cause(svc.RecordSubmission("missing")))
}

func TestService_TodaysSubmission(t *testing.T) {
	svc := newTestService(t, false)
	mockNow(t, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))

	asg, err := svc.Create("crs1", assignment.NewAssignment{Title: "Homework 1"})
	require.NoError(t, err)

	// nothing submitted today: no error, no assignment
	got, err := svc.TodaysSubmission(asg.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.RecordSubmission(asg.ID))
	got, err = svc.TodaysSubmission(asg.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.DailySubmissions)

	// yesterday's submission no longer shows
	assignment.NowFunc = func() time.Time { return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC) }
	got, err = svc.TodaysSubmission(asg.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
