package service

import (
	"context"

	"roots-catalog/internal/events"
	"roots-catalog/internal/model"
	"roots-catalog/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, keyword string, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, keyword, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, keyword string) (int, error) {
	args := m.Called(ctx, keyword)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductCache is a mock implementation of cache.ProductCache.
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, id string) *model.Product {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Product)
}

func (m *MockProductCache) Set(ctx context.Context, product *model.Product) {
	m.Called(ctx, product)
}

func (m *MockProductCache) Invalidate(ctx context.Context, id string) {
	m.Called(ctx, id)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.ProductEvent) {
	m.Called(ctx, event)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, upload storage.Upload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

// eventOfType matches a published event by type and product ID.
func eventOfType(t events.Type, productID string) interface{} {
	return mock.MatchedBy(func(e events.ProductEvent) bool {
		return e.Type == t && (productID == "" || e.ProductID == productID)
	})
}
