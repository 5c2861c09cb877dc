package teacher

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("teacher request not found")
)

type (
	Repository interface {
		CreateRequest(req Request) (Request, error)
		GetRequestByID(id string) (Request, error)
		QueryAllRequests() ([]Request, error)
		// SetRequestStatusByID reports ErrNotFound when no document was modified.
		SetRequestStatusByID(id string, status Status) error
		// SetRequestStatusByEmail reports ErrNotFound when no document was modified.
		SetRequestStatusByEmail(email string, status Status) error
		CreateApprovedTeacher(at ApprovedTeacher) (ApprovedTeacher, error)
		// DeleteRequest reports ErrNotFound when no document was deleted.
		DeleteRequest(id string) error
	}

	Service struct {
		repo     Repository
		users    *user.Service
		mailSvc  core.EmailService
		validate *validator.Validate
	}
)

func NewService(repo Repository, users *user.Service, mailSvc core.EmailService, validate *validator.Validate) *Service {
	return &Service{repo: repo, users: users, mailSvc: mailSvc, validate: validate}
}

// Submit files a new application in the pending state. Duplicate pending
// applications for the same email are allowed; the admin review list shows
// them all.
func (svc *Service) Submit(nr NewRequest) (Request, error) {
	now := time.Now().UTC()
	return svc.repo.CreateRequest(Request{
		Email:      nr.Email,
		Name:       nr.Name,
		Experience: nr.Experience,
		Category:   nr.Category,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *Service) QueryAll() ([]Request, error) {
	return svc.repo.QueryAllRequests()
}

func (svc *Service) GetByID(id string) (Request, error) {
	return svc.repo.GetRequestByID(id)
}

// Approve is the single approval transition: the Request is marked approved,
// the applicant's User record gains the teacher role, the Request is promoted
// into the approved-teachers collection and the original is removed.
//
// The four writes commit independently; there is no transaction tying them
// together. Once the first write has committed, any later failure is reported
// as core.ErrPartialWrite so the caller knows the system is in a
// partially-applied state.
func (svc *Service) Approve(id string) (Request, error) {
	req, err := svc.repo.GetRequestByID(id)
	if err != nil {
		return Request{}, err
	}

	if err = svc.repo.SetRequestStatusByID(id, StatusApproved); err != nil {
		return Request{}, errors.Wrap(err, "marking request approved")
	}
	if err = svc.users.PromoteToTeacher(req.Email); err != nil {
		return Request{}, errors.Wrapf(core.ErrPartialWrite, "promoting user %s: %v", req.Email, err)
	}
	if _, err = svc.repo.CreateApprovedTeacher(ApprovedTeacher{
		Email:      req.Email,
		Name:       req.Name,
		Experience: req.Experience,
		Category:   req.Category,
		ApprovedAt: time.Now().UTC(),
	}); err != nil {
		return Request{}, errors.Wrapf(core.ErrPartialWrite, "recording approved teacher: %v", err)
	}
	if err = svc.repo.DeleteRequest(id); err != nil {
		return Request{}, errors.Wrapf(core.ErrPartialWrite, "removing approved request: %v", err)
	}

	req.Status = StatusApproved
	svc.notifyApproved(req)
	return req, nil
}

// Reject moves the Request to the rejected state whatever its current state.
func (svc *Service) Reject(id string) error {
	return svc.repo.SetRequestStatusByID(id, StatusRejected)
}

// Reapply resets the applicant's Request to pending, matched by email.
func (svc *Service) Reapply(email string) error {
	return svc.repo.SetRequestStatusByEmail(core.CleanString(email, true /* lower */), StatusPending)
}

// notifyApproved sends a best-effort notification email to the applicant.
func (svc *Service) notifyApproved(req Request) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: req.Name, Address: req.Email}},
		Subject: "Teacher application approved",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour application to teach %s has been approved. "+
				"You can now publish courses from your teacher dashboard.\n", req.Name, req.Category),
	})
}
