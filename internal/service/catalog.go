package service

import (
	"fmt"
	"slices"
	"strings"

	"gleaming-gallery/internal/domain"
	"gleaming-gallery/internal/validation"

	"go.uber.org/zap"
)

// Catalog mutations do not check the admin identity; callers gate access.

func (s *commerceStore) Products() []domain.Product {
	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	return products
}

func (s *commerceStore) Categories() []domain.Category {
	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, *c)
	}
	return categories
}

func (s *commerceStore) GetProductByID(productID string) (*domain.Product, bool) {
	if i := s.productIndex(productID); i >= 0 {
		p := *s.products[i]
		return &p, true
	}
	return nil, false
}

func (s *commerceStore) GetCategoryByID(categoryID string) (*domain.Category, bool) {
	if i := s.categoryIndex(categoryID); i >= 0 {
		c := *s.categories[i]
		return &c, true
	}
	return nil, false
}

// AddProduct creates a product in an existing category with no rating.
func (s *commerceStore) AddProduct(input ProductInput) (*domain.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, s.fail(err, "Error adding product: invalid product details.")
	}
	category, ok := s.GetCategoryByID(input.CategoryID)
	if !ok {
		return nil, s.fail(ErrCategoryNotFound, "Error adding product: selected category not found.")
	}

	product := &domain.Product{
		ID:          s.newID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		ImageAlt:    input.ImageAlt,
		Category:    *category,
		Stock:       input.Stock,
		Brand:       input.Brand,
		Rating:      0,
		NumReviews:  0,
		DataAIHint:  input.DataAIHint,
	}
	s.products = append(s.products, product)

	s.logger.Info("Product added", zap.String("product_id", product.ID), zap.String("category_id", category.ID))
	s.succeed(fmt.Sprintf("Product added: %s has been added.", product.Name))

	added := *product
	return &added, nil
}

// UpdateProduct replaces the product with the same id. The category is
// resolved by product.Category.ID; the embedded fields are ignored in
// favour of the canonical category.
func (s *commerceStore) UpdateProduct(product domain.Product) error {
	if err := validateInput(productInputOf(product)); err != nil {
		return s.fail(err, "Error updating product: invalid product details.")
	}
	category, ok := s.GetCategoryByID(product.Category.ID)
	if !ok {
		return s.fail(ErrCategoryNotFound, "Error updating product: category for product not found.")
	}
	i := s.productIndex(product.ID)
	if i < 0 {
		return s.fail(ErrProductNotFound, "Error updating product: product not found.")
	}

	product.Category = *category
	s.products[i] = &product

	s.logger.Info("Product updated", zap.String("product_id", product.ID), zap.String("category_id", category.ID))
	s.succeed(fmt.Sprintf("Product updated: %s has been updated.", product.Name))

	return nil
}

// DeleteProduct removes the product if present.
func (s *commerceStore) DeleteProduct(productID string) {
	s.products = slices.DeleteFunc(s.products, func(p *domain.Product) bool {
		return p.ID == productID
	})

	s.logger.Info("Product deleted", zap.String("product_id", productID))
	s.succeed("Product deleted.")
}

// AddCategory creates a category whose slug and case-insensitive name are
// unused. An empty slug is derived from the name.
func (s *commerceStore) AddCategory(input CategoryInput) (*domain.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" {
		input.Slug = input.Name
	}
	raw := input.Slug
	input.Slug = validation.Slugify(raw)

	if err := underivableSlug(raw, input.Slug); err != nil {
		return nil, s.fail(err, "Error adding category: a slug could not be derived, please enter one.")
	}
	if err := validateInput(input); err != nil {
		return nil, s.fail(err, "Error adding category: name and slug are required.")
	}
	if s.categoryConflict("", input.Name, input.Slug) {
		return nil, s.fail(ErrCategoryConflict, "Error adding category: category name or slug already exists.")
	}

	category := &domain.Category{
		ID:   s.newID(),
		Name: input.Name,
		Slug: input.Slug,
	}
	s.categories = append(s.categories, category)

	s.logger.Info("Category added", zap.String("category_id", category.ID), zap.String("slug", category.Slug))
	s.succeed(fmt.Sprintf("Category added: %s has been added.", category.Name))

	added := *category
	return &added, nil
}

// UpdateCategory replaces the category and re-embeds it into every product
// that references it.
func (s *commerceStore) UpdateCategory(category domain.Category) error {
	i := s.categoryIndex(category.ID)
	if i < 0 {
		return s.fail(ErrCategoryNotFound, "Error updating category: category not found.")
	}

	raw := category.Slug
	category.Name = strings.TrimSpace(category.Name)
	category.Slug = validation.Slugify(raw)

	if err := underivableSlug(raw, category.Slug); err != nil {
		return s.fail(err, "Error updating category: a slug could not be derived, please enter one.")
	}
	if err := validateInput(CategoryInput{Name: category.Name, Slug: category.Slug}); err != nil {
		return s.fail(err, "Error updating category: name and slug are required.")
	}
	if s.categoryConflict(category.ID, category.Name, category.Slug) {
		return s.fail(ErrCategoryConflict, "Error updating category: another category with the same name or slug already exists.")
	}

	s.categories[i] = &category

	updated := 0
	for j, p := range s.products {
		if p.Category.ID == category.ID {
			embedded := *p
			embedded.Category = category
			s.products[j] = &embedded
			updated++
		}
	}

	s.logger.Info("Category updated",
		zap.String("category_id", category.ID),
		zap.Int("products_updated", updated),
	)
	s.succeed(fmt.Sprintf("Category updated: %s has been updated.", category.Name))

	return nil
}

// DeleteCategory removes a category that no product references.
func (s *commerceStore) DeleteCategory(categoryID string) error {
	inUse := slices.ContainsFunc(s.products, func(p *domain.Product) bool {
		return p.Category.ID == categoryID
	})
	if inUse {
		return s.fail(ErrCategoryInUse, "Cannot delete category: it is used by one or more products. Please reassign products first.")
	}

	s.categories = slices.DeleteFunc(s.categories, func(c *domain.Category) bool {
		return c.ID == categoryID
	})

	s.logger.Info("Category deleted", zap.String("category_id", categoryID))
	s.succeed("Category deleted.")

	return nil
}

// underivableSlug reports a non-blank slug source that normalises to nothing.
func underivableSlug(raw, slug string) error {
	if slug == "" && strings.TrimSpace(raw) != "" {
		return fmt.Errorf("%w: slug could not be derived from %q", ErrValidation, raw)
	}
	return nil
}

// categoryConflict reports whether a category other than exceptID has the
// slug or, ignoring case, the name.
func (s *commerceStore) categoryConflict(exceptID, name, slug string) bool {
	return slices.ContainsFunc(s.categories, func(c *domain.Category) bool {
		return c.ID != exceptID && (c.Slug == slug || strings.EqualFold(c.Name, name))
	})
}

func (s *commerceStore) productIndex(productID string) int {
	return slices.IndexFunc(s.products, func(p *domain.Product) bool {
		return p.ID == productID
	})
}

func (s *commerceStore) categoryIndex(categoryID string) int {
	return slices.IndexFunc(s.categories, func(c *domain.Category) bool {
		return c.ID == categoryID
	})
}
