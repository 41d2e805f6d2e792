package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	displayName string
	err         error
}

func (f *fakeAccounts) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.displayName = displayName
	return f.err
}

type fakeBonus struct {
	granted bool
	amount  int64
	err     error
}

func (f *fakeBonus) GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	f.amount = amount
	return f.granted, f.err
}

func TestOnboardNewUser(t *testing.T) {
	accounts := &fakeAccounts{}
	bonus := &fakeBonus{granted: true}
	svc := NewService(accounts, bonus, rand.New(rand.NewSource(1)))

	result, err := svc.OnboardNewUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NoError(t, result.ProfileUpdateErr)
	assert.True(t, result.WelcomeBonusGranted)
	assert.NotEmpty(t, accounts.displayName)
	assert.Positive(t, bonus.amount)
}

func TestOnboardNewUserProfileErrorIsNonFatal(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("profile down")}
	bonus := &fakeBonus{granted: true}
	svc := NewService(accounts, bonus, rand.New(rand.NewSource(1)))

	result, err := svc.OnboardNewUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Error(t, result.ProfileUpdateErr)
	assert.True(t, result.WelcomeBonusGranted)
}

func TestOnboardNewUserAlreadyGranted(t *testing.T) {
	svc := NewService(&fakeAccounts{}, &fakeBonus{granted: false}, nil)

	result, err := svc.OnboardNewUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, result.WelcomeBonusGranted)
}

func TestOnboardNewUserBonusFailure(t *testing.T) {
	svc := NewService(&fakeAccounts{}, &fakeBonus{err: errors.New("wallet down")}, nil)

	_, err := svc.OnboardNewUser(context.Background(), "user-1")
	assert.Error(t, err)
}
