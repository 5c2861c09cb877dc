package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core/stats"
	"github.com/edumanage/backend/core/user"
)

func Test_statsApi_totals(t *testing.T) {
	server, env := setup(t)

	seedUser(t, env, "Student", "student@test.cd", user.RoleStudent)
	crs := seedCourse(t, env, "Algebra I", "teacher@test.cd")
	require.NoError(t, env.courseSvc.Approve(crs.ID))
	_, err := env.courseSvc.Enroll(crs.ID, "student@test.cd")
	require.NoError(t, err)

	// the dashboard is public
	req, rec := newRequest(http.MethodGet, "/v1/stats")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var totals stats.Totals
	decodeObj(t, rec, &totals)
	assert.Equal(t, int64(1), totals.TotalUsers)
	assert.Equal(t, int64(1), totals.TotalCourses)
	assert.Equal(t, int64(1), totals.TotalEnrollments)
}
