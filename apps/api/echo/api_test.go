package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/feedback"
	"github.com/edumanage/backend/core/payment"
	"github.com/edumanage/backend/core/stats"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
	emailsvc "github.com/edumanage/backend/services/email"
	logsvc "github.com/edumanage/backend/services/logger"
	dummydb "github.com/edumanage/backend/storage/dummy"
)

// testEnv exposes the wired services for seeding test data behind the API.
type testEnv struct {
	usrSvc        *user.Service
	teacherSvc    *teacher.Service
	courseSvc     *course.Service
	assignmentSvc *assignment.Service
	feedbackSvc   *feedback.Service
	statsSvc      *stats.Service
}

// fakeIntents stands in for the payment provider.
type fakeIntents struct{}

func (fakeIntents) CreateIntent(int64, string) (string, error) { return "pi_secret", nil }

func setup(t *testing.T) (Server, *testEnv) {
	t.Helper()

	conf := &core.Config{
		TestMode:         true,
		AppName:          "EduManage",
		SecretKey:        []byte("test-secret"),
		DefaultFromEmail: mail.Address{Name: "EduManage", Address: "noreply@localhost"},
		Server:           core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))

	db, err := dummydb.Open()
	require.NoError(t, err)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	statsSvc := stats.NewService(dummydb.NewStatsRepository(db), logger)
	usrSvc := user.NewService(dummydb.NewUserRepository(db), statsSvc, validate)
	teacherSvc := teacher.NewService(dummydb.NewTeacherRepository(db), usrSvc, mailSvc, validate)
	courseSvc := course.NewService(dummydb.NewCourseRepository(db), statsSvc, validate)
	assignmentSvc := assignment.NewService(dummydb.NewAssignmentRepository(db), false, validate)
	feedbackSvc := feedback.NewService(dummydb.NewFeedbackRepository(db), validate)
	paymentSvc := payment.NewService(fakeIntents{})

	server := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,

		UserSvc:       usrSvc,
		TeacherSvc:    teacherSvc,
		CourseSvc:     courseSvc,
		AssignmentSvc: assignmentSvc,
		FeedbackSvc:   feedbackSvc,
		StatsSvc:      statsSvc,
		PaymentSvc:    paymentSvc,
	})

	return server, &testEnv{
		usrSvc:        usrSvc,
		teacherSvc:    teacherSvc,
		courseSvc:     courseSvc,
		assignmentSvc: assignmentSvc,
		feedbackSvc:   feedbackSvc,
		statsSvc:      statsSvc,
	}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// seedUser registers an account and optionally bumps its role.
func seedUser(t *testing.T, env *testEnv, name, email string, role user.Role) user.User {
	t.Helper()

	usr, err := env.usrSvc.Register(user.NewUser{Name: name, Email: email})
	require.NoError(t, err)

	switch role {
	case user.RoleAdmin:
		require.NoError(t, env.usrSvc.GrantAdmin(usr.ID))
	case user.RoleTeacher:
		require.NoError(t, env.usrSvc.PromoteToTeacher(usr.Email))
	}
	usr, err = env.usrSvc.GetByID(usr.ID)
	require.NoError(t, err)
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := GenerateToken(GetClaims(usr.Email, usr.Name, usr.Role))
	require.NoError(t, err)
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decodeObj(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), obj))
}
