package service

import (
	"fmt"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/validation"

	"github.com/shopspring/decimal"
)

// RegisterInput is the payload of a customer registration.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AddressInput holds the fields of a new address.
type AddressInput struct {
	Street  string `validate:"required"`
	City    string `validate:"required"`
	State   string `validate:"required"`
	ZipCode string `validate:"required"`
	Country string `validate:"required"`
}

func addressInputOf(a domain.Address) AddressInput {
	return AddressInput{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

// ProductInput holds the admin-editable fields of a product.
type ProductInput struct {
	Name        string `validate:"required"`
	Description string
	Price       decimal.Decimal `validate:"gt=0"`
	ImageURL    string
	ImageAlt    string
	CategoryID  string `validate:"required"`
	Stock       int    `validate:"gte=0"`
	Brand       string
	DataAIHint  string
}

func productInputOf(p domain.Product) ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		ImageAlt:    p.ImageAlt,
		CategoryID:  p.Category.ID,
		Stock:       p.Stock,
		Brand:       p.Brand,
		DataAIHint:  p.DataAIHint,
	}
}

// CategoryInput holds the fields of a new category. An empty slug is
// derived from the name.
type CategoryInput struct {
	Name string `validate:"required"`
	Slug string `validate:"required,slug"`
}

// OrderLineInput is one product line of an order placed elsewhere.
type OrderLineInput struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"gte=1"`
}

// OrderRecordInput describes an order placed by another storefront session.
// An empty ID is generated.
type OrderRecordInput struct {
	ID     string
	UserID string
	Items  []OrderLineInput `validate:"required,min=1,dive"`
}

// ProductFilter narrows a catalog listing. Zero values disable a criterion.
type ProductFilter struct {
	CategorySlug string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Brands       []string
	MinRating    float64
}

func validateInput(v interface{}) error {
	if err := validation.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
