package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core/feedback"
	"github.com/edumanage/backend/core/user"
)

func Test_feedbackApi(t *testing.T) {
	server, env := setup(t)

	student := seedUser(t, env, "Student", "student@test.cd", user.RoleStudent)

	body := marshallObj(t, feedback.NewFeedback{
		Name:        student.Name,
		Email:       student.Email,
		Rating:      4.5,
		Comment:     "Great course!",
		CourseTitle: "Algebra I",
	})

	req, rec := newRequest(http.MethodPost, "/v1/feedbacks", body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// reviews are left under one's own email
	other := seedUser(t, env, "Other", "other@test.cd", user.RoleStudent)
	req, rec = newAuthRequest(http.MethodPost, "/v1/feedbacks", getToken(t, other), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/feedbacks", getToken(t, student), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created feedback.Feedback
	decodeObj(t, rec, &created)
	assert.NotEmpty(t, created.ID)

	// the listing is public
	req, rec = newRequest(http.MethodGet, "/v1/feedbacks")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var fbs []feedback.Feedback
	decodeObj(t, rec, &fbs)
	require.Len(t, fbs, 1)
	assert.Equal(t, "Great course!", fbs[0].Comment)
}
