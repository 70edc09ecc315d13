package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roots-catalog/internal/cache"
	"roots-catalog/internal/events"
	"roots-catalog/internal/model"
	"roots-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	cache       cache.ProductCache
	publisher   events.Publisher
	pageSize    int
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	productCache cache.ProductCache,
	publisher events.Publisher,
	pageSize int,
	logger zerolog.Logger,
) ProductService {
	if pageSize <= 0 {
		pageSize = 10
	}

	return &productService{
		productRepo: productRepo,
		cache:       productCache,
		publisher:   publisher,
		pageSize:    pageSize,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of products matching keyword.
func (s *productService) List(ctx context.Context, keyword string, page int) (*model.ProductPage, error) {
	keyword = strings.TrimSpace(keyword)
	if page < 1 {
		page = 1
	}

	total, err := s.productRepo.Count(ctx, keyword)
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", keyword).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * s.pageSize
	products, err := s.productRepo.List(ctx, keyword, s.pageSize, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Str("keyword", keyword).
			Int("page", page).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Str("keyword", keyword).
		Int("page", page).
		Int("count", len(products)).
		Int("total", total).
		Msg("listed products")

	return &model.ProductPage{
		Products: products,
		Page:     page,
		Pages:    model.PageCount(total, s.pageSize),
	}, nil
}

// GetByID retrieves a single product, consulting the cache first.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		s.logger.Debug().Str("product_id", id).Msg("malformed product ID")
		return nil, model.ErrProductNotFound
	}

	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	s.cache.Set(ctx, product)

	return product, nil
}

// CreateSample inserts a placeholder product.
func (s *productService) CreateSample(ctx context.Context) (*model.Product, error) {
	product := model.NewSampleProduct(uuid.NewString(), s.now())

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create sample product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publisher.Publish(ctx, events.NewProductEvent(events.ProductCreated, product.ID))

	s.logger.Info().Str("product_id", product.ID).Msg("sample product created")

	return product, nil
}

// Update validates update and overwrites the product's editable fields.
func (s *productService) Update(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error) {
	if !validID(id) {
		return nil, model.ErrProductNotFound
	}

	update.Name = strings.TrimSpace(update.Name)
	if err := validateUpdate(update); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product update rejected")
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to load product for update")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Apply(update)
	product.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	s.publisher.Publish(ctx, events.NewProductEvent(events.ProductUpdated, id))

	s.logger.Info().Str("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.cache.Invalidate(ctx, id)
	s.publisher.Publish(ctx, events.NewProductEvent(events.ProductDeleted, id))

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

// validID reports whether id can be a stored product ID.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// validateUpdate checks the editable fields of a product.
func validateUpdate(u model.ProductUpdate) error {
	if u.Name == "" {
		return model.ErrInvalidName
	}

	if !u.Type.Valid() {
		return model.ErrInvalidType
	}

	if u.Price.IsNegative() || u.Price.GreaterThan(model.MaxPrice) || !u.Price.Equal(u.Price.Round(2)) {
		return model.ErrInvalidPrice
	}

	if u.CountInStock < 0 || u.CountInStock > model.MaxCountInStock {
		return model.ErrInvalidStock
	}

	return nil
}
