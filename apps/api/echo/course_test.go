package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/user"
)

func seedCourse(t *testing.T, env *testEnv, title, teacherEmail string) course.Course {
	t.Helper()

	crs, err := env.courseSvc.Create(course.NewCourse{
		Title:        title,
		Price:        49.99,
		TeacherName:  "Teacher",
		TeacherEmail: teacherEmail,
	})
	require.NoError(t, err)
	return crs
}

func Test_courseApi_create(t *testing.T) {
	server, env := setup(t)

	teacherUsr := seedUser(t, env, "Teacher", "teacher@test.cd", user.RoleTeacher)

	body := marshallObj(t, course.NewCourse{
		Title:        "Algebra I",
		Price:        49.99,
		TeacherName:  teacherUsr.Name,
		TeacherEmail: teacherUsr.Email,
	})

	req, rec := newRequest(http.MethodPost, "/v1/courses", body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// teachers only publish under their own email
	other := seedUser(t, env, "Other", "other@test.cd", user.RoleTeacher)
	req, rec = newAuthRequest(http.MethodPost, "/v1/courses", getToken(t, other), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/courses", getToken(t, teacherUsr), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created course.Course
	decodeObj(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, course.StatusPending, created.Status)
}

func Test_courseApi_publicCatalog(t *testing.T) {
	server, env := setup(t)

	c1 := seedCourse(t, env, "Algebra I", "teacher@test.cd")
	c2 := seedCourse(t, env, "Algebra II", "teacher@test.cd")
	_, err := env.courseSvc.Enroll(c2.ID, "student@test.cd")
	require.NoError(t, err)

	// no token needed anywhere here
	req, rec := newRequest(http.MethodGet, "/v1/courses")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var courses []course.Course
	decodeObj(t, rec, &courses)
	assert.Len(t, courses, 2)

	req, rec = newRequest(http.MethodGet, "/v1/courses/popular")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeObj(t, rec, &courses)
	require.Len(t, courses, 2)
	assert.Equal(t, c2.ID, courses[0].ID) // most enrolled first

	req, rec = newRequest(http.MethodGet, "/v1/courses/"+c1.ID)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeObj(t, rec, &got)
	assert.Equal(t, c1.Title, got.Title)

	req, rec = newRequest(http.MethodGet, "/v1/courses/missing")
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_courseApi_review(t *testing.T) {
	server, env := setup(t)

	admin := seedUser(t, env, "Admin", "admin@test.cd", user.RoleAdmin)
	student := seedUser(t, env, "Student", "student@test.cd", user.RoleStudent)

	c1 := seedCourse(t, env, "Algebra I", "teacher@test.cd")
	c2 := seedCourse(t, env, "Algebra II", "teacher@test.cd")
	require.NoError(t, env.courseSvc.Approve(c1.ID))

	req, rec := newAuthRequest(http.MethodGet, "/v1/courses/review", getToken(t, student))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/courses/review", getToken(t, admin))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// pending first
	var courses []course.Course
	decodeObj(t, rec, &courses)
	require.Len(t, courses, 2)
	assert.Equal(t, c2.ID, courses[0].ID)
	assert.Equal(t, c1.ID, courses[1].ID)
}

func Test_courseApi_moderation(t *testing.T) {
	server, env := setup(t)

	admin := seedUser(t, env, "Admin", "admin@test.cd", user.RoleAdmin)
	crs := seedCourse(t, env, "Algebra I", "teacher@test.cd")

	req, rec := newAuthRequest(http.MethodPatch, "/v1/courses/"+crs.ID+"/approve", getToken(t, admin))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := env.courseSvc.GetByID(crs.ID)
	require.NoError(t, err)
	assert.Equal(t, course.StatusApproved, got.Status)

	req, rec = newAuthRequest(http.MethodPatch, "/v1/courses/"+crs.ID+"/reject", getToken(t, admin))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err = env.courseSvc.GetByID(crs.ID)
	require.NoError(t, err)
	assert.Equal(t, course.StatusRejected, got.Status)
}

func Test_courseApi_updateAndDestroy(t *testing.T) {
	server, env := setup(t)

	teacherUsr := seedUser(t, env, "Teacher", "teacher@test.cd", user.RoleTeacher)
	admin := seedUser(t, env, "Admin", "admin@test.cd", user.RoleAdmin)
	stranger := seedUser(t, env, "Stranger", "stranger@test.cd", user.RoleTeacher)

	crs := seedCourse(t, env, "Algebra I", teacherUsr.Email)

	title := "Algebra I (revised)"
	body := marshallObj(t, course.UpdateCourse{Title: &title})

	// neither owner nor admin
	req, rec := newAuthRequest(http.MethodPatch, "/v1/courses/"+crs.ID, getToken(t, stranger), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// the owner may edit
	req, rec = newAuthRequest(http.MethodPatch, "/v1/courses/"+crs.ID, getToken(t, teacherUsr), body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeObj(t, rec, &got)
	assert.Equal(t, title, got.Title)

	// so may an admin
	req, rec = newAuthRequest(http.MethodDelete, "/v1/courses/"+crs.ID, getToken(t, admin))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := env.courseSvc.GetByID(crs.ID)
	assert.Equal(t, course.ErrNotFound, err)
}

func Test_courseApi_enroll(t *testing.T) {
	server, env := setup(t)

	student := seedUser(t, env, "Student", "student@test.cd", user.RoleStudent)
	crs := seedCourse(t, env, "Algebra I", "teacher@test.cd")

	req, rec := newRequest(http.MethodPost, "/v1/courses/"+crs.ID+"/enroll")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", getToken(t, student))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var enr course.Enrollment
	decodeObj(t, rec, &enr)
	assert.Equal(t, crs.ID, enr.CourseID)
	assert.Equal(t, student.Email, enr.StudentEmail)

	got, err := env.courseSvc.GetByID(crs.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalEnrollment)

	req, rec = newAuthRequest(http.MethodPost, "/v1/courses/missing/enroll", getToken(t, student))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
