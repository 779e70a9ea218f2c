package service

import (
	"slices"

	"gleaming-gallery/internal/domain"

	"go.uber.org/zap"
)

const loginForAddresses = "Please log in to manage addresses."

// AddAddress appends a new, non-default address for the current user.
func (s *commerceStore) AddAddress(input AddressInput) (*domain.Address, error) {
	user, err := s.requireUser(loginForAddresses)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, s.fail(err, "Address not saved: missing fields")
	}

	address := domain.Address{
		ID:      s.newID(),
		Street:  input.Street,
		City:    input.City,
		State:   input.State,
		ZipCode: input.ZipCode,
		Country: input.Country,
	}
	user.Addresses = append(slices.Clone(user.Addresses), address)

	s.logger.Debug("Address added", zap.String("user_id", user.ID), zap.String("address_id", address.ID))
	s.succeed("Address added.")

	return &address, nil
}

// UpdateAddress replaces the address with the same id. If the replacement
// is flagged default, the flag is cleared on every other address.
func (s *commerceStore) UpdateAddress(address domain.Address) error {
	user, err := s.requireUser(loginForAddresses)
	if err != nil {
		return err
	}
	if err := validateInput(addressInputOf(address)); err != nil {
		return s.fail(err, "Address not saved: missing fields")
	}

	i := addressIndex(user.Addresses, address.ID)
	if i < 0 {
		return s.fail(ErrAddressNotFound, "Address not found.")
	}

	addresses := slices.Clone(user.Addresses)
	addresses[i] = address
	if address.IsDefault {
		for j := range addresses {
			addresses[j].IsDefault = j == i
		}
	}
	user.Addresses = addresses

	s.logger.Debug("Address updated", zap.String("user_id", user.ID), zap.String("address_id", address.ID))
	s.succeed("Address updated.")

	return nil
}

// DeleteAddress removes an address. Deleting the default address leaves the
// user without one.
func (s *commerceStore) DeleteAddress(addressID string) error {
	user, err := s.requireUser(loginForAddresses)
	if err != nil {
		return err
	}

	i := addressIndex(user.Addresses, addressID)
	if i < 0 {
		return s.fail(ErrAddressNotFound, "Address not found.")
	}
	user.Addresses = slices.Delete(slices.Clone(user.Addresses), i, i+1)

	s.logger.Debug("Address deleted", zap.String("user_id", user.ID), zap.String("address_id", addressID))
	s.succeed("Address deleted.")

	return nil
}

// SetDefaultAddress flags addressID as the only default address.
func (s *commerceStore) SetDefaultAddress(addressID string) error {
	user, err := s.requireUser(loginForAddresses)
	if err != nil {
		return err
	}
	if addressIndex(user.Addresses, addressID) < 0 {
		return s.fail(ErrAddressNotFound, "Address not found.")
	}

	addresses := slices.Clone(user.Addresses)
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID
	}
	user.Addresses = addresses

	s.logger.Debug("Default address set", zap.String("user_id", user.ID), zap.String("address_id", addressID))
	s.succeed("Default address updated.")

	return nil
}

// DefaultAddress returns the default address, falling back to the first one.
func (s *commerceStore) DefaultAddress() (*domain.Address, bool) {
	if s.currentUser == nil || len(s.currentUser.Addresses) == 0 {
		return nil, false
	}
	for _, a := range s.currentUser.Addresses {
		if a.IsDefault {
			return &a, true
		}
	}
	first := s.currentUser.Addresses[0]
	return &first, true
}

func addressIndex(addresses []domain.Address, id string) int {
	return slices.IndexFunc(addresses, func(a domain.Address) bool {
		return a.ID == id
	})
}
