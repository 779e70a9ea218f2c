package service

import (
	"context"
	"errors"
	"fmt"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/repository"

	"go.uber.org/zap"
)

// Login makes the customer with the given email the current identity.
// The password is not checked against any stored credential.
func (s *commerceStore) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to find user: %w", err), "Login failed")
	}
	if user == nil {
		return nil, s.fail(ErrAuthenticationFailed, "Login failed: user not found")
	}

	s.currentUser = user

	s.logger.Info("Customer logged in", zap.String("user_id", user.ID))
	s.succeed("Logged in successfully!")

	return user.Clone(), nil
}

// Logout clears the customer identity and the cart.
func (s *commerceStore) Logout(ctx context.Context) {
	if s.currentUser != nil {
		s.logger.Info("Customer logged out", zap.String("user_id", s.currentUser.ID))
	}

	s.currentUser = nil
	s.ClearCart(ctx)
	s.succeed("Logged out.")
}

// Register creates a customer account and makes it the current identity.
func (s *commerceStore) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	input := RegisterInput{Name: name, Email: email, Password: password}
	if err := validateInput(input); err != nil {
		return nil, s.fail(err, "Registration failed: invalid details")
	}

	existing, err := s.findUser(ctx, email)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to check existing user: %w", err), "Registration failed")
	}
	if existing != nil {
		return nil, s.fail(ErrEmailTaken, "Registration failed: email already exists")
	}

	user := &domain.User{
		ID:                 s.newID(),
		Name:               name,
		Email:              email,
		Addresses:          []domain.Address{},
		FavoriteProductIDs: []string{},
	}
	s.usersByEmail[email] = user
	s.currentUser = user

	s.logger.Info("Customer registered", zap.String("user_id", user.ID))
	s.succeed("Registered successfully!")

	return user.Clone(), nil
}

func (s *commerceStore) CurrentUser() (*domain.User, bool) {
	if s.currentUser == nil {
		return nil, false
	}
	return s.currentUser.Clone(), true
}

// AdminLogin sets the admin identity when the credentials match the
// configured pair. The customer identity and the cart are untouched.
func (s *commerceStore) AdminLogin(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	if !s.admins.Verify(email, password) {
		return nil, s.fail(ErrAuthenticationFailed, "Admin login failed: invalid credentials")
	}

	s.adminUser = &domain.AdminUser{ID: s.newID(), Email: email}
	s.saveAdmin(ctx)

	s.logger.Info("Admin logged in", zap.String("admin_id", s.adminUser.ID))
	s.succeed("Admin logged in successfully!")

	admin := *s.adminUser
	return &admin, nil
}

func (s *commerceStore) AdminLogout(ctx context.Context) {
	s.adminUser = nil
	s.saveAdmin(ctx)
	s.succeed("Admin logged out.")
}

func (s *commerceStore) AdminUser() (*domain.AdminUser, bool) {
	if s.adminUser == nil {
		return nil, false
	}
	admin := *s.adminUser
	return &admin, true
}

// findUser looks in the known users first and then in the directory.
// Users found in the directory are adopted. A miss is (nil, nil).
func (s *commerceStore) findUser(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := s.usersByEmail[email]; ok {
		return user, nil
	}

	found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	user := found.Clone()
	s.usersByEmail[user.Email] = user
	return user, nil
}

// requireUser returns the current customer or reports ErrNotAuthenticated.
func (s *commerceStore) requireUser(message string) (*domain.User, error) {
	if s.currentUser == nil {
		return nil, s.fail(ErrNotAuthenticated, message)
	}
	return s.currentUser, nil
}
