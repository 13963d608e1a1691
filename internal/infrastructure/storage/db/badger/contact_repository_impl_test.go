package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

func TestContactRoundTrip(t *testing.T) {
	before()
	defer after()

	inserted := map[string]string{}
	for i := 0; i < 4; i++ {
		contact, err := domain.NewContact(randomAddress(), randomName())
		require.NoError(t, err)
		require.NoError(t, contactRepository.UpsertContact(ctx, contact))
		inserted[contact.Address] = contact.Name
	}

	// reopen the store and check every mutation survived
	dbManager.Close()
	var err error
	dbManager, err = NewDbManager(testDir, nil)
	require.NoError(t, err)
	contactRepository = dbManager.ContactRepository()

	contacts, err := contactRepository.GetAllContacts(ctx)
	require.NoError(t, err)
	require.Equal(t, len(inserted), len(contacts))
	for _, c := range contacts {
		assert.Equal(t, inserted[c.Address], c.Name)
	}
}

func TestUpsertContactOverwrites(t *testing.T) {
	before()
	defer after()

	contact, err := domain.NewContact(randomAddress(), "alice")
	require.NoError(t, err)
	require.NoError(t, contactRepository.UpsertContact(ctx, contact))

	contact.Name = "bob"
	require.NoError(t, contactRepository.UpsertContact(ctx, contact))

	stored, err := contactRepository.GetContact(ctx, contact.Address)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "bob", stored.Name)
}

func TestDeleteContact(t *testing.T) {
	before()
	defer after()

	contact, err := domain.NewContact(randomAddress(), randomName())
	require.NoError(t, err)
	require.NoError(t, contactRepository.UpsertContact(ctx, contact))

	require.NoError(t, contactRepository.DeleteContact(ctx, contact.Address))

	stored, err := contactRepository.GetContact(ctx, contact.Address)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// absent key is a no-op
	require.NoError(t, contactRepository.DeleteContact(ctx, contact.Address))
}
