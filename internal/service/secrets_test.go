package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, otpMin)
		assert.LessOrEqual(t, n, otpMax)
	}
}

func TestGenerateResetToken(t *testing.T) {
	a, err := generateResetToken()
	require.NoError(t, err)
	b, err := generateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, resetTokenLen*2)
	assert.NotEqual(t, a, b)
}

func TestHashResetToken(t *testing.T) {
	h := hashResetToken("token")

	assert.Len(t, h, 64)
	assert.Equal(t, h, hashResetToken("token"))
	assert.NotEqual(t, h, hashResetToken("other"))
	assert.NotEqual(t, "token", h)
}
