package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMailUnconfiguredDegradesToLog(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_FROM", "")

	// OTP and reset flows must keep working without SMTP set up.
	assert.NoError(t, sendMail("a@b.com", "Login OTP", "Your login OTP is: 123456"))
}
