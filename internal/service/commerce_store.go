package service

import (
	"context"
	"fmt"
	"time"

	"gleaming-gallery/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogSource supplies the initial catalog. It is read once by Init.
type CatalogSource interface {
	LoadCategories(ctx context.Context) ([]*domain.Category, error)
	LoadProducts(ctx context.Context) ([]*domain.Product, error)
	LoadReviews(ctx context.Context) ([]*domain.Review, error)
}

// UserDirectory looks up customer accounts that are not yet known to the
// store. Implementations return repository.ErrUserNotFound on a miss.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AdminVerifier checks administrator credentials.
type AdminVerifier interface {
	Verify(email, password string) bool
}

// SessionStore persists the cart and the admin session across restarts.
// SaveAdmin with a nil admin clears the admin session.
type SessionStore interface {
	LoadCart(ctx context.Context) ([]domain.CartItem, error)
	SaveCart(ctx context.Context, items []domain.CartItem) error
	LoadAdmin(ctx context.Context) (*domain.AdminUser, error)
	SaveAdmin(ctx context.Context, admin *domain.AdminUser) error
}

// Notifier receives the outcome of every mutating operation.
type Notifier interface {
	Notify(kind domain.NotificationKind, message string)
}

// CommerceStore owns the cart, identities, favorites, addresses, orders and
// the catalog. It is not safe for concurrent use; share it through an Actor.
type CommerceStore interface {
	Init(ctx context.Context) error

	AddToCart(ctx context.Context, product domain.Product, quantity int)
	RemoveFromCart(ctx context.Context, productID string)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	ClearCart(ctx context.Context)
	CartItems() []domain.CartItem
	CartTotal() decimal.Decimal
	CartCount() int

	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	CurrentUser() (*domain.User, bool)
	AdminLogin(ctx context.Context, email, password string) (*domain.AdminUser, error)
	AdminLogout(ctx context.Context)
	AdminUser() (*domain.AdminUser, bool)

	ToggleFavorite(product domain.Product) (bool, error)
	IsFavorite(productID string) bool
	FavoriteItems() []domain.Product

	AddAddress(input AddressInput) (*domain.Address, error)
	UpdateAddress(address domain.Address) error
	DeleteAddress(addressID string) error
	SetDefaultAddress(addressID string) error
	DefaultAddress() (*domain.Address, bool)

	PlaceOrder(ctx context.Context, shippingAddress domain.Address) (*domain.Order, error)
	RecordOrder(input OrderRecordInput) (*domain.Order, error)
	Orders() []domain.Order
	GetOrderByID(orderID string) (*domain.Order, bool)
	UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error
	UpdateOrderStatus(orderID string, status domain.OrderStatus) error

	Products() []domain.Product
	Categories() []domain.Category
	GetProductByID(productID string) (*domain.Product, bool)
	GetCategoryByID(categoryID string) (*domain.Category, bool)
	AddProduct(input ProductInput) (*domain.Product, error)
	UpdateProduct(product domain.Product) error
	DeleteProduct(productID string)
	AddCategory(input CategoryInput) (*domain.Category, error)
	UpdateCategory(category domain.Category) error
	DeleteCategory(categoryID string) error

	FilterProducts(filter ProductFilter) []domain.Product
	Brands() []string
	MaxPrice() decimal.Decimal
	ProductRating(productID string) (float64, int)
}

// Dependencies are the collaborators of a CommerceStore. Only Catalog is
// required; the others fall back to inert implementations.
type Dependencies struct {
	Catalog  CatalogSource
	Users    UserDirectory
	Admins   AdminVerifier
	Session  SessionStore
	Notifier Notifier
}

// Option customises a CommerceStore.
type Option func(*commerceStore)

// WithClock sets the time source used to stamp orders.
func WithClock(now func() time.Time) Option {
	return func(s *commerceStore) { s.now = now }
}

// WithIDGenerator sets the generator for new entity ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *commerceStore) { s.newID = newID }
}

type commerceStore struct {
	catalog  CatalogSource
	users    UserDirectory
	admins   AdminVerifier
	session  SessionStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string

	cart         []domain.CartItem
	usersByEmail map[string]*domain.User
	currentUser  *domain.User
	adminUser    *domain.AdminUser
	orders       []*domain.Order
	products     []*domain.Product
	categories   []*domain.Category
	reviews      []*domain.Review
}

// NewCommerceStore creates an empty store. Call Init to seed it.
func NewCommerceStore(deps Dependencies, logger *zap.Logger, opts ...Option) CommerceStore {
	s := &commerceStore{
		catalog:      deps.Catalog,
		users:        deps.Users,
		admins:       deps.Admins,
		session:      deps.Session,
		notifier:     deps.Notifier,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
		cart:         []domain.CartItem{},
		usersByEmail: make(map[string]*domain.User),
	}

	if s.users == nil {
		s.users = noUsers{}
	}
	if s.admins == nil {
		s.admins = noAdmins{}
	}
	if s.session == nil {
		s.session = noSession{}
	}
	if s.notifier == nil {
		s.notifier = noNotifier{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init seeds the catalog and restores the persisted session.
func (s *commerceStore) Init(ctx context.Context) error {
	if s.catalog != nil {
		categories, err := s.catalog.LoadCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		products, err := s.catalog.LoadProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		reviews, err := s.catalog.LoadReviews(ctx)
		if err != nil {
			return fmt.Errorf("failed to load reviews: %w", err)
		}

		s.categories = categories
		s.products = products
		s.reviews = reviews
	}

	cart, err := s.session.LoadCart(ctx)
	if err != nil {
		s.logger.Warn("Failed to restore cart snapshot", zap.Error(err))
	} else if cart != nil {
		s.cart = cart
	}

	admin, err := s.session.LoadAdmin(ctx)
	if err != nil {
		s.logger.Warn("Failed to restore admin session", zap.Error(err))
	} else {
		s.adminUser = admin
	}

	s.logger.Info("Commerce store initialized",
		zap.Int("categories", len(s.categories)),
		zap.Int("products", len(s.products)),
		zap.Int("reviews", len(s.reviews)),
		zap.Int("cart_items", len(s.cart)),
		zap.Bool("admin_session", s.adminUser != nil),
	)

	return nil
}

func (s *commerceStore) succeed(message string) {
	s.notifier.Notify(domain.NotificationSuccess, message)
}

// fail reports message and returns err unchanged.
func (s *commerceStore) fail(err error, message string) error {
	s.notifier.Notify(domain.NotificationError, message)
	s.logger.Info("Operation rejected", zap.String("reason", message), zap.Error(err))
	return err
}

func (s *commerceStore) saveCart(ctx context.Context) {
	if err := s.session.SaveCart(ctx, s.CartItems()); err != nil {
		s.logger.Warn("Failed to save cart snapshot", zap.Error(err))
	}
}

func (s *commerceStore) saveAdmin(ctx context.Context) {
	if err := s.session.SaveAdmin(ctx, s.adminUser); err != nil {
		s.logger.Warn("Failed to save admin session", zap.Error(err))
	}
}

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}

type noAdmins struct{}

func (noAdmins) Verify(string, string) bool { return false }

type noSession struct{}

func (noSession) LoadCart(context.Context) ([]domain.CartItem, error) { return nil, nil }
func (noSession) SaveCart(context.Context, []domain.CartItem) error { return nil }
func (noSession) LoadAdmin(context.Context) (*domain.AdminUser, error) { return nil, nil }
func (noSession) SaveAdmin(context.Context, *domain.AdminUser) error { return nil }

type noNotifier struct{}

func (noNotifier) Notify(domain.NotificationKind, string) {}
