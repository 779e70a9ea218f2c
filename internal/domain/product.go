package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog. Category is an embedded
// snapshot of the category at assignment time, not a reference.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	ImageAlt    string          `json:"image_alt" db:"image_alt"`
	Category    Category        `json:"category"`
	Stock       int             `json:"stock" db:"stock"`
	Brand       string          `json:"brand,omitempty" db:"brand"`
	Rating      float64         `json:"rating" db:"rating"`
	NumReviews  int             `json:"num_reviews" db:"num_reviews"`
	DataAIHint  string          `json:"data_ai_hint,omitempty" db:"data_ai_hint"`
}

// Category represents a product category
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// CartItem is a product row in the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price * quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Review is a customer review of a product.
type Review struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name" db:"user_name"`
	ProductID string    `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
