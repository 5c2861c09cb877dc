package stripepay

import (
	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/edumanage/backend/core/payment"
)

type service struct {
	api *client.API
}

var _ payment.IntentCreator = (*service)(nil)

func NewService(secretKey string) payment.IntentCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &service{api: api}
}

// CreateIntent asks Stripe for a card PaymentIntent and returns its client
// secret for the frontend to confirm.
func (svc *service) CreateIntent(amountMinorUnits int64, currency string) (string, error) {
	intent, err := svc.api.PaymentIntents.New(&stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		return "", errors.Wrap(err, "creating stripe payment intent")
	}
	return intent.ClientSecret, nil
}
