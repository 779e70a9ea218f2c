package service

import (
	"context"
	"testing"

	"gleaming-gallery/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var officeAddress = AddressInput{
	Street:  "1 Looking Glass Lane",
	City:    "Wonderland",
	State:   "WL",
	ZipCode: "54321",
	Country: "USA",
}

func loggedInStore(t *testing.T) CommerceStore {
	t.Helper()

	store, _ := newTestStore(t, Dependencies{})
	_, err := store.Login(context.Background(), "alice@example.com", "")
	require.NoError(t, err)
	return store
}

func defaultCount(addresses []domain.Address) int {
	n := 0
	for _, a := range addresses {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddresses_RequireLogin(t *testing.T) {
	store, recorder := newTestStore(t, Dependencies{})

	_, err := store.AddAddress(officeAddress)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, store.UpdateAddress(domain.Address{ID: "addr1"}), ErrNotAuthenticated)
	assert.ErrorIs(t, store.DeleteAddress("addr1"), ErrNotAuthenticated)
	assert.ErrorIs(t, store.SetDefaultAddress("addr1"), ErrNotAuthenticated)

	_, ok := store.DefaultAddress()
	assert.False(t, ok)

	last, _ := recorder.Last()
	assert.Equal(t, "Please log in to manage addresses.", last.Message)
}

func TestAddAddress(t *testing.T) {
	store := loggedInStore(t)

	address, err := store.AddAddress(officeAddress)
	require.NoError(t, err)
	assert.NotEmpty(t, address.ID)
	assert.False(t, address.IsDefault)

	user, _ := store.CurrentUser()
	require.Len(t, user.Addresses, 2)
	assert.Equal(t, address.ID, user.Addresses[1].ID)

	_, err = store.AddAddress(AddressInput{Street: "Nowhere"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetDefaultAddress(t *testing.T) {
	store := loggedInStore(t)
	office, err := store.AddAddress(officeAddress)
	require.NoError(t, err)

	require.NoError(t, store.SetDefaultAddress(office.ID))

	user, _ := store.CurrentUser()
	assert.Equal(t, 1, defaultCount(user.Addresses))
	def, ok := store.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, office.ID, def.ID)

	assert.ErrorIs(t, store.SetDefaultAddress("missing"), ErrAddressNotFound)
}

func TestUpdateAddress(t *testing.T) {
	store := loggedInStore(t)
	office, err := store.AddAddress(officeAddress)
	require.NoError(t, err)

	updated := *office
	updated.City = "Queen's Court"
	updated.IsDefault = true
	require.NoError(t, store.UpdateAddress(updated))

	user, _ := store.CurrentUser()
	assert.Equal(t, "Queen's Court", user.Addresses[1].City)
	assert.True(t, user.Addresses[1].IsDefault)
	assert.False(t, user.Addresses[0].IsDefault)

	updated.ID = "missing"
	assert.ErrorIs(t, store.UpdateAddress(updated), ErrAddressNotFound)

	updated.ID = office.ID
	updated.Street = ""
	assert.ErrorIs(t, store.UpdateAddress(updated), ErrValidation)
}

func TestDeleteAddress_DefaultIsNotReassigned(t *testing.T) {
	store := loggedInStore(t)
	office, err := store.AddAddress(officeAddress)
	require.NoError(t, err)

	require.NoError(t, store.DeleteAddress("addr1"))

	user, _ := store.CurrentUser()
	require.Len(t, user.Addresses, 1)
	assert.Equal(t, 0, defaultCount(user.Addresses))

	// falls back to the first address
	def, ok := store.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, office.ID, def.ID)

	assert.ErrorIs(t, store.DeleteAddress("addr1"), ErrAddressNotFound)
}

func TestCurrentUser_ReturnsCopy(t *testing.T) {
	store := loggedInStore(t)

	user, _ := store.CurrentUser()
	user.Addresses[0].City = "Elsewhere"
	user.FavoriteProductIDs[0] = "9"

	again, _ := store.CurrentUser()
	assert.Equal(t, "Fantasy Land", again.Addresses[0].City)
	assert.Equal(t, "1", again.FavoriteProductIDs[0])
}

// Feature: gleaming-gallery-store, Property 22: At most one address is the default
func TestProperty_SingleDefaultAddress(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no sequence of address operations yields two defaults", prop.ForAll(
		func(ops []int) bool {
			store := loggedInStore(t)

			for _, op := range ops {
				user, _ := store.CurrentUser()
				var target domain.Address
				if len(user.Addresses) > 0 {
					target = user.Addresses[(op/4)%len(user.Addresses)]
				}

				switch op % 4 {
				case 0:
					_, _ = store.AddAddress(officeAddress)
				case 1:
					_ = store.SetDefaultAddress(target.ID)
				case 2:
					if target.ID != "" {
						target.IsDefault = true
						_ = store.UpdateAddress(target)
					}
				case 3:
					_ = store.DeleteAddress(target.ID)
				}

				user, _ = store.CurrentUser()
				if defaultCount(user.Addresses) > 1 {
					t.Logf("FAIL: %d defaults after op %d", defaultCount(user.Addresses), op)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 39)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
