package service

import (
	"context"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the editable product fields. PricePerGallon is
// the decimal text entered by the admin.
type ProductInput struct {
	ID             string
	Name           string
	ShortName      string
	PricePerGallon string
	Taxable        bool
}

// ListProducts returns the catalog
func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// CreateProduct adds a product under a new, permanent ID
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	id := strings.ToUpper(strings.TrimSpace(input.ID))

	var fieldErrors []apperror.FieldError
	if id == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "id", Message: "ID is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product ID already exists")
	}

	product := &entity.Product{ID: id}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of a product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ID != "" && !strings.EqualFold(strings.TrimSpace(input.ID), product.ID) {
		return nil, apperror.NewFieldValidationError("id", "Product ID cannot be changed")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewFieldValidationError("name", "Name is required")
	}

	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdatePrice sets the per-gallon price of a product. A blank price resets
// it to zero.
func (s *ProductService) UpdatePrice(ctx context.Context, id, price string) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := parseCatalogPrice(price)
	if err != nil {
		return nil, err
	}
	product.PricePerGallon = p

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func applyProductInput(p *entity.Product, input *ProductInput) error {
	price, err := parseCatalogPrice(input.PricePerGallon)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(input.Name)
	p.ShortName = strings.TrimSpace(input.ShortName)
	p.PricePerGallon = price
	p.Taxable = input.Taxable
	return nil
}

func parseCatalogPrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	price, err := pricing.ParsePrice(s)
	if err != nil {
		return decimal.Zero, apperror.NewFieldValidationError("pricePerGallon", "Price must be a number of zero or more")
	}
	return price, nil
}
