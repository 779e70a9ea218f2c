package domain

import "slices"

// Address is a shipping address owned by a customer.
type Address struct {
	ID        string `json:"id" db:"id"`
	Street    string `json:"street" db:"street"`
	City      string `json:"city" db:"city"`
	State     string `json:"state" db:"state"`
	ZipCode   string `json:"zip_code" db:"zip_code"`
	Country   string `json:"country" db:"country"`
	IsDefault bool   `json:"is_default" db:"is_default"`
}

// User is a customer account.
type User struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	Addresses          []Address `json:"addresses"`
	FavoriteProductIDs []string  `json:"favorite_product_ids"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Addresses = slices.Clone(u.Addresses)
	c.FavoriteProductIDs = slices.Clone(u.FavoriteProductIDs)
	if c.Addresses == nil {
		c.Addresses = []Address{}
	}
	if c.FavoriteProductIDs == nil {
		c.FavoriteProductIDs = []string{}
	}
	return &c
}

// AdminUser is an administrator identity, separate from customers.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
