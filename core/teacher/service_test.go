package teacher_test

import (
	"net/mail"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
	emailsvc "github.com/edumanage/backend/services/email"
	dummydb "github.com/edumanage/backend/storage/dummy"
)

type noopStats struct{}

func (noopStats) Increment(string, int64) {}

func newTestService(t *testing.T) (*teacher.Service, *user.Service) {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)

	conf := &core.Config{
		AppName:          "EduManage",
		DefaultFromEmail: mail.Address{Name: "EduManage", Address: "noreply@localhost"},
	}
	validate := validator.New()
	usrSvc := user.NewService(dummydb.NewUserRepository(db), noopStats{}, validate)
	svc := teacher.NewService(dummydb.NewTeacherRepository(db), usrSvc, emailsvc.NewConsoleServiceMock(conf), validate)
	return svc, usrSvc
}

func TestService_Submit(t *testing.T) {
	svc, _ := newTestService(t)

	req, err := svc.Submit(teacher.NewRequest{
		Email:      "awe@test.cd",
		Name:       "Awe Mu",
		Experience: "5 years",
		Category:   "Mathematics",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, teacher.StatusPending, req.Status)

	// duplicate applications are allowed; admins see them all
	_, err = svc.Submit(teacher.NewRequest{Email: "awe@test.cd", Name: "Awe Mu"})
	require.NoError(t, err)

	reqs, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
}

func TestService_Approve(t *testing.T) {
	svc, usrSvc := newTestService(t)

	_, err := svc.Approve("missing")
	assert.Equal(t, teacher.ErrNotFound, errors.Cause(err))

	usr, err := usrSvc.Register(user.NewUser{Name: "Awe Mu", Email: "awe@test.cd"})
	require.NoError(t, err)

	req, err := svc.Submit(teacher.NewRequest{Email: usr.Email, Name: usr.Name, Category: "Mathematics"})
	require.NoError(t, err)

	sent := len(emailsvc.SentMessages)

	approved, err := svc.Approve(req.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.StatusApproved, approved.Status)

	// the applicant's account gains the teacher role
	usr, err = usrSvc.GetByID(usr.ID)
	require.NoError(t, err)
	assert.True(t, usr.IsTeacher())

	// the original request is gone once promoted
	_, err = svc.GetByID(req.ID)
	assert.Equal(t, teacher.ErrNotFound, errors.Cause(err))

	// the applicant was notified
	require.Len(t, emailsvc.SentMessages, sent+1)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, []mail.Address{{Name: usr.Name, Address: usr.Email}}, msg.To)
	assert.Contains(t, msg.Subject, "approved")
}

func TestService_Approve_partialWrite(t *testing.T) {
	svc, _ := newTestService(t)

	// no registered account to promote: the request is marked approved but the
	// rest of the transition cannot complete
	req, err := svc.Submit(teacher.NewRequest{Email: "ghost@test.cd", Name: "Ghost"})
	require.NoError(t, err)

	_, err = svc.Approve(req.ID)
	assert.Equal(t, core.ErrPartialWrite, errors.Cause(err))

	req, err = svc.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.StatusApproved, req.Status)
}

func TestService_RejectAndReapply(t *testing.T) {
	svc, _ := newTestService(t)

	req, err := svc.Submit(teacher.NewRequest{Email: "awe@test.cd", Name: "Awe Mu"})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(req.ID))
	req, err = svc.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.StatusRejected, req.Status)

	require.NoError(t, svc.Reapply("Awe@Test.CD")) // matching is case-insensitive
	req, err = svc.GetByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, teacher.StatusPending, req.Status)

	// a pending request has nothing to reset
	assert.Equal(t, teacher.ErrNotFound, errors.Cause(svc.Reapply(req.Email)))

	assert.Equal(t, teacher.ErrNotFound, errors.Cause(svc.Reject("missing")))
}
