package services_test

import (
	"testing"

	"giftmart/internal/models"
	"giftmart/internal/repositories"
	"giftmart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressService_SaveUpsertsSingleRecord(t *testing.T) {
	service := services.NewAddressService(repositories.NewMockAddressRepository())

	first := models.ShippingAddress{
		Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100",
		Address: "12 Analytical Way", City: "London", State: "LDN", ZipCode: "12345",
	}
	require.NoError(t, service.SaveUserAddress("user-a", first, true))

	second := first
	second.Address = "1 New Street"
	second.City = "Cambridge"
	require.NoError(t, service.SaveUserAddress("user-a", second, true))

	addresses, err := service.GetUserAddresses("user-a")
	require.NoError(t, err)
	require.Len(t, addresses, 1, "second save must patch, not insert")
	assert.Equal(t, "1 New Street", addresses[0].Address)
	assert.Equal(t, "Cambridge", addresses[0].City)
	assert.True(t, addresses[0].IsDefault)
}

func TestAddressService_AddressesAreScopedPerUser(t *testing.T) {
	service := services.NewAddressService(repositories.NewMockAddressRepository())

	addr := models.ShippingAddress{
		Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100",
		Address: "12 Analytical Way", City: "London", State: "LDN", ZipCode: "12345",
	}
	require.NoError(t, service.SaveUserAddress("user-a", addr, true))

	addresses, err := service.GetUserAddresses("user-b")
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
