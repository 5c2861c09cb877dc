package payment

import (
	"github.com/pkg/errors"

	"github.com/edumanage/backend/core"
)

var errInvalidAmount = errors.New("price must be positive")

type (
	// IntentCreator is the opaque payment-provider contract: it turns an
	// amount in minor units into a client secret the frontend confirms with.
	IntentCreator interface {
		CreateIntent(amountMinorUnits int64, currency string) (clientSecret string, err error)
	}

	Service struct {
		intents IntentCreator
	}
)

func NewService(intents IntentCreator) *Service {
	return &Service{intents: intents}
}

// CreateIntent converts the course price to USD minor units (price x 100,
// truncated) and asks the provider for a payment intent.
func (svc *Service) CreateIntent(price float64) (string, error) {
	if price <= 0 {
		return "", core.NewValidationError(errInvalidAmount, core.FieldError{Field: "price", Error: errInvalidAmount.Error()})
	}
	amount := int64(price * 100)
	secret, err := svc.intents.CreateIntent(amount, "usd")
	if err != nil {
		return "", errors.Wrap(err, "creating payment intent")
	}
	return secret, nil
}
