package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core/payment"
)

type paymentApi struct {
	svc *payment.Service
}

func registerPaymentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *payment.Service) {
	api := paymentApi{svc: svc}
	g.POST("/payments/intent", api.createIntent, jwt)
}

type (
	PaymentIntentRequest struct {
		Price float64 `json:"price"`
	}

	PaymentIntentResponse struct {
		ClientSecret string `json:"clientSecret"`
	}
)

// createIntent opens a card payment for a course price; the returned client
// secret is confirmed frontend-side.
func (api *paymentApi) createIntent(ctx echo.Context) error {
	var data PaymentIntentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentIntentRequest")
	}

	secret, err := api.svc.CreateIntent(data.Price)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}
