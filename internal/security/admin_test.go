package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vendorhub/internal/security"
)

func TestCheckAdminKey(t *testing.T) {
	hash, err := security.HashAdminKey("correct-key")
	assert.NoError(t, err)

	assert.NoError(t, security.CheckAdminKey(hash, "correct-key"))
	assert.ErrorIs(t, security.CheckAdminKey(hash, "wrong-key"), security.ErrInvalidAdminKey)
	assert.ErrorIs(t, security.CheckAdminKey(hash, ""), security.ErrInvalidAdminKey)
	assert.ErrorIs(t, security.CheckAdminKey("", "correct-key"), security.ErrInvalidAdminKey)
}
