package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The admin front end reads price as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// PlantType is the catalogue category of a product.
type PlantType string

const (
	PlantAnnual     PlantType = "Annual"
	PlantBulb       PlantType = "Bulb"
	PlantFruit      PlantType = "Fruit"
	PlantHerb       PlantType = "Herb"
	PlantHouseplant PlantType = "Houseplant"
	PlantPerennial  PlantType = "Perennial"
	PlantRose       PlantType = "Rose"
	PlantShrub      PlantType = "Shrub"
	PlantTree       PlantType = "Tree"
	PlantVegetable  PlantType = "Vegetable"
	PlantVine       PlantType = "Vine"
	PlantWaterPlant PlantType = "Water Plant"
)

// PlantTypes lists every accepted plant type in display order.
var PlantTypes = []PlantType{
	PlantAnnual,
	PlantBulb,
	PlantFruit,
	PlantHerb,
	PlantHouseplant,
	PlantPerennial,
	PlantRose,
	PlantShrub,
	PlantTree,
	PlantVegetable,
	PlantVine,
	PlantWaterPlant,
}

// Valid reports whether t is one of PlantTypes.
func (t PlantType) Valid() bool {
	for _, known := range PlantTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Largest values the products table can hold: price is NUMERIC(10,2) and
// count_in_stock an INTEGER.
var (
	MaxPrice        = decimal.RequireFromString("99999999.99")
	MaxCountInStock = math.MaxInt32
)

// Product represents a plant in the catalogue.
type Product struct {
	ID           string          `json:"_id" db:"id" csv:"id"`
	Name         string          `json:"name" db:"name" csv:"name"`
	Image        string          `json:"image" db:"image" csv:"image"`
	Description  string          `json:"description" db:"description" csv:"description"`
	Type         PlantType       `json:"type" db:"type" csv:"type"`
	Flower       string          `json:"flower" db:"flower" csv:"flower"`
	Price        decimal.Decimal `json:"price" db:"price" csv:"price"`
	CountInStock int             `json:"countInStock" db:"count_in_stock" csv:"count_in_stock"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at" csv:"-"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at" csv:"-"`
}

// ProductUpdate is the full set of editable product fields submitted by the edit form.
type ProductUpdate struct {
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Description  string          `json:"description"`
	Type         PlantType       `json:"type"`
	Flower       string          `json:"flower"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"countInStock"`
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// PageCount returns the number of pages needed to hold total items.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// NewSampleProduct returns the placeholder product created by the list screen's
// "Create Product" action. The admin edits it immediately afterwards.
func NewSampleProduct(id string, now time.Time) *Product {
	return &Product{
		ID:           id,
		Name:         "Sample name",
		Image:        "/images/sample.jpg",
		Description:  "Sample description",
		Type:         PlantAnnual,
		Flower:       "Sample flower",
		Price:        decimal.Zero,
		CountInStock: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply copies the editable fields of u onto p.
func (p *Product) Apply(u ProductUpdate) {
	p.Name = u.Name
	p.Image = u.Image
	p.Description = u.Description
	p.Type = u.Type
	p.Flower = u.Flower
	p.Price = u.Price
	p.CountInStock = u.CountInStock
}
