package payment_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/payment"
)

// fakeIntents records the last requested intent.
type fakeIntents struct {
	amount   int64
	currency string
}

func (f *fakeIntents) CreateIntent(amountMinorUnits int64, currency string) (string, error) {
	f.amount = amountMinorUnits
	f.currency = currency
	return "pi_secret", nil
}

func TestService_CreateIntent(t *testing.T) {
	intents := &fakeIntents{}
	svc := payment.NewService(intents)

	secret, err := svc.CreateIntent(49.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", secret)
	assert.Equal(t, int64(4999), intents.amount) // minor units, truncated
	assert.Equal(t, "usd", intents.currency)
}

func TestService_CreateIntent_invalidPrice(t *testing.T) {
	svc := payment.NewService(&fakeIntents{})

	for _, price := range []float64{0, -10} {
		_, err := svc.CreateIntent(price)
		require.Error(t, err)
		_, ok := errors.Cause(err).(*core.ValidationError)
		assert.True(t, ok)
	}
}
