package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
)

type assignmentApi struct {
	svc    *assignment.Service
	crsSvc *course.Service
}

func registerAssignmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assignment.Service, crsSvc *course.Service) {
	api := assignmentApi{svc: svc, crsSvc: crsSvc}

	g.POST("/courses/:id/assignments", api.create, jwt)
	g.GET("/courses/:id/assignments", api.queryByCourse, jwt)

	ag := g.Group("/assignments", jwt)
	ag.POST("/:id/submissions", api.recordSubmission)
	ag.GET("/:id/submissions/today", api.todaysSubmission)
}

// Handlers

func (api *assignmentApi) create(ctx echo.Context) error {
	// the course must exist; assignments never dangle
	crs, err := api.crsSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	asg, err := api.svc.Create(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, asg)
}

func (api *assignmentApi) queryByCourse(ctx echo.Context) error {
	asgs, err := api.svc.QueryByCourse(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) recordSubmission(ctx echo.Context) error {
	if err := api.svc.RecordSubmission(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Submission recorded."})
}

// todaysSubmission returns the assignment when its last submission happened
// today, JSON null otherwise.
func (api *assignmentApi) todaysSubmission(ctx echo.Context) error {
	asg, err := api.svc.TodaysSubmission(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}
