package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

func TestAddAndGetAccount(t *testing.T) {
	before()
	defer after()

	account := randomAccount()
	err := accountRepository.AddAccount(ctx, account)
	require.NoError(t, err)

	stored, err := accountRepository.GetAccount(ctx, account.Address)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, account.Name, stored.Name)

	err = accountRepository.AddAccount(ctx, account)
	require.EqualError(t, err, domain.ErrAccountAlreadyExists.Error())
}

func TestGetAccountNotFound(t *testing.T) {
	before()
	defer after()

	stored, err := accountRepository.GetAccount(ctx, randomAddress())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGetAllAccounts(t *testing.T) {
	before()
	defer after()

	for i := 0; i < 5; i++ {
		err := accountRepository.AddAccount(ctx, randomAccount())
		require.NoError(t, err)
	}

	accounts, err := accountRepository.GetAllAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, len(accounts))
}

func TestUpdateAccount(t *testing.T) {
	before()
	defer after()

	account := randomAccount()
	err := accountRepository.AddAccount(ctx, account)
	require.NoError(t, err)

	err = accountRepository.UpdateAccount(
		ctx, account.Address,
		func(a *domain.Account) (*domain.Account, error) {
			a.UpdateBalance(42, 43)
			a.TogglePinned()
			return a, nil
		},
	)
	require.NoError(t, err)

	stored, err := accountRepository.GetAccount(ctx, account.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), stored.Balance)
	assert.Equal(t, uint64(43), stored.UnconfirmedBalance)
	assert.True(t, stored.Pinned)

	err = accountRepository.UpdateAccount(
		ctx, randomAddress(),
		func(a *domain.Account) (*domain.Account, error) { return a, nil },
	)
	require.EqualError(t, err, domain.ErrAccountNotExist.Error())
}

func TestUpsertAndDeleteAccount(t *testing.T) {
	before()
	defer after()

	account := randomAccount()
	err := accountRepository.UpsertAccount(ctx, account)
	require.NoError(t, err)

	account.Name = "renamed"
	err = accountRepository.UpsertAccount(ctx, account)
	require.NoError(t, err)

	stored, err := accountRepository.GetAccount(ctx, account.Address)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Name)

	err = accountRepository.DeleteAccount(ctx, account.Address)
	require.NoError(t, err)

	stored, err = accountRepository.GetAccount(ctx, account.Address)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// deleting an absent address is a no-op
	err = accountRepository.DeleteAccount(ctx, account.Address)
	require.NoError(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	before()
	defer after()

	settings, err := settingsRepository.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFiatCurrency, settings.FiatCurrency)
	assert.Empty(t, settings.Locale)

	err = settingsRepository.UpdateSettings(
		ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s.Locale = "fr"
			s.SelectedAddress = "123R"
			return s, nil
		},
	)
	require.NoError(t, err)

	settings, err = settingsRepository.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fr", settings.Locale)
	assert.Equal(t, "123R", settings.SelectedAddress)
}
