package razorpay

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureRoundTrip(t *testing.T) {
	secret := "test_secret"
	sig := Signature(secret, "order_abc", "pay_xyz")

	assert.True(t, VerifySignature(secret, "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_other", sig))
	assert.False(t, VerifySignature("wrong_secret", "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_xyz", sig+"0"))
}

func TestSignatureDeterministic(t *testing.T) {
	a := Signature("s", "o", "p")
	b := Signature("s", "o", "p")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex sha256
}

func TestCreateOrderDevFallback(t *testing.T) {
	c := &Client{} // no credentials
	order, err := c.CreateOrder(context.Background(), 100000, "receipt-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "order_dev_"))
	assert.Equal(t, int64(100000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "receipt-1", order.Receipt)
}
