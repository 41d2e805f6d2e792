package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableTokenRoundTrip(t *testing.T) {
	svc := NewTableTokenService("secret", "guandan")

	token, err := svc.GenerateToken("user-1", "table-9", 2)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	tableID, seat, err := svc.VerifyToken(token, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "table-9", tableID)
	assert.Equal(t, 2, seat)
}

func TestTableTokenRejectsOtherUser(t *testing.T) {
	svc := NewTableTokenService("secret", "guandan")
	token, err := svc.GenerateToken("user-1", "table-9", 2)
	require.NoError(t, err)

	_, _, err = svc.VerifyToken(token, "user-2")
	assert.Error(t, err)
}

func TestTableTokenRejectsTampering(t *testing.T) {
	issuer := NewTableTokenService("secret", "guandan")
	token, err := issuer.GenerateToken("user-1", "table-9", 2)
	require.NoError(t, err)

	other := NewTableTokenService("different", "guandan")
	_, _, err = other.VerifyToken(token, "user-1")
	assert.Error(t, err)
}

func TestTableTokenRequiresConfig(t *testing.T) {
	svc := NewTableTokenService("", "")
	_, err := svc.GenerateToken("user-1", "table-9", 0)
	assert.Error(t, err)
}
