package service

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryConflict     = errors.New("category name or slug already exists")
	ErrCategoryInUse        = errors.New("category is used by one or more products")
	ErrProductNotFound      = errors.New("product not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderExists          = errors.New("order already exists")
	ErrOperationPanicked    = errors.New("store operation panicked")
)
