package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyList = "categories:list"
	cacheTTL     = 10 * time.Minute
)

type categoryService struct {
	repo  category.Repository
	cache cache.Cache
}

func NewService(repo category.Repository, cacheClient cache.Cache) category.Service {
	return &categoryService{
		repo:  repo,
		cache: cacheClient,
	}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	entity := &category.Category{
		Name:        name,
		Slug:        utils.GenerateSlug(name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    isActive,
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	log.Info().Int64("category_id", created.ID).Str("name", created.Name).Msg("Category created")
	return created, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	if id <= 0 {
		return nil, category.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context, filter *category.Filter) ([]category.Category, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	// Cache only the unfiltered first page; it backs the import UI dropdown.
	cacheable := filter.Search == "" && filter.IsActive == nil && filter.Offset == 0

	type listCache struct {
		Items []category.Category `json:"items"`
		Total int64               `json:"total"`
	}

	if cacheable && s.cache != nil {
		var cached listCache
		if found, err := s.cache.Get(ctx, cacheKeyList, &cached); err == nil && found {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if cacheable && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyList, listCache{Items: items, Total: total}, cacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache category list")
		}
	}

	return items, total, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req category.UpdateRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Slug = utils.GenerateSlug(existing.Name)
	existing.Description = strings.TrimSpace(req.Description)
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return category.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	log.Info().Int64("category_id", id).Msg("Category deleted")
	return nil
}

// GetOrCreate resolves a category id by name (case-insensitive), creating the
// category on a miss. Used by the import merge path when a row carries a
// category name the catalog has not seen before.
func (s *categoryService) GetOrCreate(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, category.ErrCategoryNotFound
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, category.ErrCategoryNotFound) {
		return 0, err
	}

	created, err := s.repo.Create(ctx, &category.Category{
		Name:     name,
		Slug:     utils.GenerateSlug(name),
		IsActive: true,
	})
	if err != nil {
		// A concurrent import may have created it between find and create.
		if errors.Is(err, category.ErrDuplicateName) {
			if existing, findErr := s.repo.FindByName(ctx, name); findErr == nil {
				return existing.ID, nil
			}
		}
		return 0, err
	}

	s.invalidateListCache(ctx)

	log.Info().Int64("category_id", created.ID).Str("name", name).Msg("Category auto-created during import")
	return created.ID, nil
}

// FindIDByName is the lookup-only sibling of GetOrCreate, used by imports
// configured not to create categories on the fly.
func (s *categoryService) FindIDByName(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, category.ErrCategoryNotFound
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (s *categoryService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyList); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate category cache")
	}
}
