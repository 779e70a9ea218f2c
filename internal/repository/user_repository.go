package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gleaming-gallery/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// UserRepository defines the interface for customer data access. A user is
// loaded together with its addresses and favorite product ids.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user with its addresses and favorites in one transaction
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
		user.ID, user.Name, user.Email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	for _, a := range user.Addresses {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO addresses (id, user_id, street, city, state, zip_code, country, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, user.ID, a.Street, a.City, a.State, a.ZipCode, a.Country, a.IsDefault)
		if err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
	}

	for _, productID := range user.FavoriteProductIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO favorites (user_id, product_id) VALUES ($1, $2)`,
			user.ID, productID,
		)
		if err != nil {
			return fmt.Errorf("failed to create favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user by exact email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE email = $1
	`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := r.loadRelations(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	if err := r.loadRelations(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) loadRelations(ctx context.Context, user *domain.User) error {
	addresses, err := r.listAddresses(ctx, user.ID)
	if err != nil {
		return err
	}
	favorites, err := r.listFavorites(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Addresses = addresses
	user.FavoriteProductIDs = favorites
	return nil
}

func (r *userRepository) listAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	query := `
		SELECT id, street, city, state, zip_code, country, is_default
		FROM addresses
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.ZipCode, &a.Country, &a.IsDefault)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

func (r *userRepository) listFavorites(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT product_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, productID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}
