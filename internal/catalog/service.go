package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service interface {
	AddProduct(ctx context.Context, product *Product) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddProduct(ctx context.Context, product *Product) (*Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		log.Warn().Msg("service: attempt to add product with empty name")
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
	}

	if product.Price.IsNegative() {
		log.Warn().Str("name", product.Name).Msg("service: attempt to add product with negative price")
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}

	_, err := s.repo.Create(ctx, product)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Stringer("product_id", product.ID).Str("name", product.Name).Msg("service: product added")

	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products in repository")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}
