package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/repository"
	"catalog-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

const (
	productCacheTTL = 10 * time.Minute
)

type productService struct {
	repo       repository.ProductRepository
	categories category.Service
	cache      cache.Cache
}

func NewProductService(repo repository.ProductRepository, categories category.Service, cacheClient cache.Cache) ProductService {
	return &productService{
		repo:       repo,
		categories: categories,
		cache:      cacheClient,
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("products:%d", id)
}

func (s *productService) Create(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := req.ToProduct()
	if err := s.resolveCategory(ctx, product); err != nil {
		return nil, err
	}
	product.Normalize()

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("Product created")
	return created, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	if s.cache != nil {
		var cached model.Product
		if found, err := s.cache.Get(ctx, productCacheKey(id), &cached); err == nil && found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, productCacheKey(id), product, productCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache product")
		}
	}

	return product, nil
}

func (s *productService) List(ctx context.Context, filter *model.ListFilter) ([]model.Product, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	return s.repo.List(ctx, filter)
}

func (s *productService) Update(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product := req.ToProduct()
	product.ID = id
	product.CreatedAt = existing.CreatedAt
	if err := s.resolveCategory(ctx, product); err != nil {
		return nil, err
	}
	product.Normalize()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *productService) SetArchived(ctx context.Context, id int64, archived bool) error {
	if id <= 0 {
		return model.ErrInvalidID
	}

	if err := s.repo.SetArchived(ctx, id, archived); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	log.Info().Int64("product_id", id).Bool("archived", archived).Msg("Product archive flag changed")
	return nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	log.Info().Int64("product_id", id).Msg("Product deleted")
	return nil
}

// resolveCategory fills the category id from a bare category name.
func (s *productService) resolveCategory(ctx context.Context, product *model.Product) error {
	if product.CategoryID != nil || strings.TrimSpace(product.CategoryName) == "" {
		return nil
	}

	id, err := s.categories.GetOrCreate(ctx, product.CategoryName)
	if err != nil {
		return fmt.Errorf("failed to resolve category %q: %w", product.CategoryName, err)
	}

	product.CategoryID = &id
	return nil
}

func (s *productService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate product cache")
	}
}
