package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/feedback"
)

type feedbackApi struct {
	svc *feedback.Service
}

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *feedback.Service) {
	api := feedbackApi{svc: svc}

	fg := g.Group("/feedbacks")

	// reviews feed the public landing page
	fg.GET("", api.query)
	fg.POST("", api.create, jwt)
}

// Handlers

func (api *feedbackApi) create(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}
	if err := requireOwnEmail(ctx, data.Email); err != nil {
		return err
	}

	fb, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	fbs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying feedbacks")
	}
	if fbs == nil {
		fbs = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, fbs)
}
