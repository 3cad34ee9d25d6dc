package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("changeme123")

	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "changeme123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAccountID(t *testing.T) {
	id := GenerateAccountID()

	assert.Len(t, id, 6)
	assert.Regexp(t, `^[1-9]\d{5}$`, id)
}

func TestGenerateRecoveryCode(t *testing.T) {
	code := GenerateRecoveryCode()

	assert.Len(t, code, 8)
	assert.Regexp(t, `^[0-9A-F]{8}$`, code)
}
