package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
)

type teacherApi struct {
	svc *teacher.Service
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *teacher.Service, usrSvc *user.Service) {
	api := teacherApi{svc: svc}

	tg := g.Group("/teacher-requests", jwt)

	tg.POST("", api.submit)
	tg.GET("", api.query, adminMiddleware(usrSvc))
	tg.PATCH("/reapply", api.reapply)
	tg.PATCH("/:id/approve", api.approve, adminMiddleware(usrSvc))
	tg.PATCH("/:id/reject", api.reject, adminMiddleware(usrSvc))
}

// Handlers

func (api *teacherApi) submit(ctx echo.Context) error {
	var data teacher.NewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRequest")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}
	// applicants only file for themselves
	if err := requireOwnEmail(ctx, data.Email); err != nil {
		return err
	}

	req, err := api.svc.Submit(data)
	if err != nil {
		return errors.Wrap(err, "submitting teacher request")
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (api *teacherApi) query(ctx echo.Context) error {
	reqs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teacher requests")
	}
	if reqs == nil {
		reqs = []teacher.Request{}
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api *teacherApi) approve(ctx echo.Context) error {
	req, err := api.svc.Approve(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, req)
}

func (api *teacherApi) reject(ctx echo.Context) error {
	if err := api.svc.Reject(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Teacher request rejected."})
}

// reapply resets the caller's rejected application back to pending.
func (api *teacherApi) reapply(ctx echo.Context) error {
	email := core.CleanString(ctx.QueryParam("email"), true /* lower */)
	if email == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "email", Error: "email is required"})
	}
	if err := requireOwnEmail(ctx, email); err != nil {
		return err
	}

	if err := api.svc.Reapply(email); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Teacher request is pending again."})
}
