package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

func TestResolveRedirectsToOnboardingWithoutAccounts(t *testing.T) {
	svc, _ := newTestWalletService(newMockLedgerService())
	nav := application.NewNavigator(svc)

	paths := []string{
		application.PathAccountList,
		"/account/111R",
		"/account/111R/send",
		"/account",
	}
	for _, path := range paths {
		transition, err := nav.Resolve(ctx, path)
		require.NoError(t, err)
		require.True(t, transition.IsRedirect(), "path %s", path)
		assert.Equal(t, application.PathOnboarding, transition.RedirectTo)
	}

	// routes out of account scope render as usual
	transition, err := nav.Resolve(ctx, application.PathAddressBook)
	require.NoError(t, err)
	require.False(t, transition.IsRedirect())
	assert.Equal(t, application.RouteAddressBook, transition.Route.Name)
}

func TestResolveAccountRoute(t *testing.T) {
	ledgerSvc := newMockLedgerService()
	ledgerSvc.setAccount(&ledgerapi.Account{Address: "111R", Balance: 42})
	svc, repoManager := newTestWalletService(ledgerSvc)
	addAccount(repoManager, "111R", "one", false)
	nav := application.NewNavigator(svc)

	transition, err := nav.Resolve(ctx, "/account/111R")
	require.NoError(t, err)
	require.False(t, transition.IsRedirect())
	assert.Equal(t, application.RouteAccount, transition.Route.Name)
	assert.Equal(t, "111R", transition.Params["address"])

	// entering the route selected the account and refreshed it
	selected, err := svc.SelectedAccount(ctx)
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "111R", selected.Address)
	assert.Equal(t, uint64(42), selected.Balance)
}

func TestResolveParamsChangeSwitchesAccount(t *testing.T) {
	ledgerSvc := newMockLedgerService()
	ledgerSvc.setAccount(&ledgerapi.Account{Address: "111R"})
	ledgerSvc.setAccount(&ledgerapi.Account{Address: "222R"})
	svc, repoManager := newTestWalletService(ledgerSvc)
	addAccount(repoManager, "111R", "one", false)
	addAccount(repoManager, "222R", "two", false)
	nav := application.NewNavigator(svc)

	_, err := nav.Resolve(ctx, "/account/111R")
	require.NoError(t, err)

	// same route, different address segment
	transition, err := nav.Resolve(ctx, "/account/222R")
	require.NoError(t, err)
	require.False(t, transition.IsRedirect())

	selected, err := svc.SelectedAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "222R", selected.Address)
	assert.Equal(t, 1, ledgerSvc.getAccountCalls["111R"])
	assert.Equal(t, 1, ledgerSvc.getAccountCalls["222R"])

	// re-resolving with the same params fires no hook
	_, err = nav.Resolve(ctx, "/account/222R")
	require.NoError(t, err)
	assert.Equal(t, 1, ledgerSvc.getAccountCalls["222R"])
}

func TestResolveBareAccountRoute(t *testing.T) {
	ledgerSvc := newMockLedgerService()
	ledgerSvc.setAccount(&ledgerapi.Account{Address: "111R"})
	svc, repoManager := newTestWalletService(ledgerSvc)
	addAccount(repoManager, "111R", "one", false)
	require.NoError(t, svc.SelectAccount(ctx, "111R"))
	nav := application.NewNavigator(svc)

	transition, err := nav.Resolve(ctx, "/account")
	require.NoError(t, err)
	require.True(t, transition.IsRedirect())
	assert.Equal(t, "/account/111R", transition.RedirectTo)

	transition, err = nav.Resolve(ctx, "/send")
	require.NoError(t, err)
	require.True(t, transition.IsRedirect())
	assert.Equal(t, "/account/111R/send", transition.RedirectTo)
}

func TestResolveToRender(t *testing.T) {
	ledgerSvc := newMockLedgerService()
	ledgerSvc.setAccount(&ledgerapi.Account{Address: "111R"})
	svc, repoManager := newTestWalletService(ledgerSvc)
	addAccount(repoManager, "111R", "one", false)
	require.NoError(t, svc.SelectAccount(ctx, "111R"))
	nav := application.NewNavigator(svc)

	transition, err := nav.ResolveToRender(ctx, "/account")
	require.NoError(t, err)
	require.False(t, transition.IsRedirect())
	assert.Equal(t, application.RouteAccount, transition.Route.Name)
	assert.Equal(t, "111R", transition.Params["address"])
}

func TestResolveUnknownPath(t *testing.T) {
	svc, repoManager := newTestWalletService(newMockLedgerService())
	addAccount(repoManager, "111R", "one", false)
	nav := application.NewNavigator(svc)

	transition, err := nav.Resolve(ctx, "/nowhere")
	require.NoError(t, err)
	require.True(t, transition.IsRedirect())
	assert.Equal(t, application.PathAccountList, transition.RedirectTo)
}
