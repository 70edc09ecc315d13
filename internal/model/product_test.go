package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantType_Valid(t *testing.T) {
	for _, pt := range PlantTypes {
		assert.True(t, pt.Valid(), "%q should be valid", pt)
	}

	assert.False(t, PlantType("").Valid())
	assert.False(t, PlantType("annual").Valid())
	assert.False(t, PlantType("Cactus").Valid())
	assert.Len(t, PlantTypes, 12)
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		expected int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PageCount(tt.total, tt.pageSize), "PageCount(%d, %d)", tt.total, tt.pageSize)
	}
}

func TestNewSampleProduct(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := NewSampleProduct("2b1f8d8e-0f5a-4b65-8a2d-8a3c1f0c9e11", now)

	assert.Equal(t, "2b1f8d8e-0f5a-4b65-8a2d-8a3c1f0c9e11", p.ID)
	assert.Equal(t, "Sample name", p.Name)
	assert.Equal(t, "/images/sample.jpg", p.Image)
	assert.Equal(t, PlantAnnual, p.Type)
	assert.Equal(t, "Sample flower", p.Flower)
	assert.Equal(t, "Sample description", p.Description)
	assert.True(t, p.Price.IsZero())
	assert.Equal(t, 0, p.CountInStock)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestProduct_Apply(t *testing.T) {
	now := time.Now()
	p := NewSampleProduct("id-1", now)

	p.Apply(ProductUpdate{
		Name:         "Camellia",
		Image:        "/uploads/image-1.jpg",
		Description:  "Evergreen shrub",
		Type:         PlantShrub,
		Flower:       "Pink",
		Price:        decimal.RequireFromString("24.99"),
		CountInStock: 6,
	})

	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "Camellia", p.Name)
	assert.Equal(t, "/uploads/image-1.jpg", p.Image)
	assert.Equal(t, "Evergreen shrub", p.Description)
	assert.Equal(t, PlantShrub, p.Type)
	assert.Equal(t, "Pink", p.Flower)
	assert.Equal(t, "24.99", p.Price.StringFixed(2))
	assert.Equal(t, 6, p.CountInStock)
	assert.Equal(t, now, p.CreatedAt)
}

func TestProduct_JSON(t *testing.T) {
	p := Product{
		ID:    "abc",
		Name:  "Fern",
		Type:  PlantHouseplant,
		Price: decimal.RequireFromString("4.5"),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc", raw["_id"])
	assert.Equal(t, "Houseplant", raw["type"])
	assert.Equal(t, 4.5, raw["price"], "price should be a JSON number")

	var update ProductUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Fern","price":12.5,"countInStock":3,"type":"Herb"}`), &update))
	assert.True(t, decimal.RequireFromString("12.5").Equal(update.Price))
	assert.Equal(t, 3, update.CountInStock)
	assert.Equal(t, PlantHerb, update.Type)
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrCodeInvalidPage, "Page number must be a positive integer")
	assert.Equal(t, "Page number must be a positive integer", err.Error())
	assert.Equal(t, ErrCodeInvalidPage, err.Code)
	assert.Equal(t, ErrCodeProductNotFound, ErrProductNotFound.Code)
}
