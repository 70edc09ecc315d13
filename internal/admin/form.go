package admin

import (
	"fmt"
	"strconv"
	"strings"

	"roots-catalog/internal/model"

	"github.com/shopspring/decimal"
)

// ProductForm is the local copy of a product being edited.
type ProductForm struct {
	Name         string
	Image        string
	Description  string
	Type         model.PlantType
	Flower       string
	Price        decimal.Decimal
	CountInStock int
}

// FormFromProduct copies the editable fields of p into a form.
func FormFromProduct(p *model.Product) ProductForm {
	return ProductForm{
		Name:         p.Name,
		Image:        p.Image,
		Description:  p.Description,
		Type:         p.Type,
		Flower:       p.Flower,
		Price:        p.Price,
		CountInStock: p.CountInStock,
	}
}

// ToUpdate returns the full update submitted for this form.
func (f ProductForm) ToUpdate() model.ProductUpdate {
	return model.ProductUpdate{
		Name:         f.Name,
		Image:        f.Image,
		Description:  f.Description,
		Type:         f.Type,
		Flower:       f.Flower,
		Price:        f.Price,
		CountInStock: f.CountInStock,
	}
}

// SetPrice parses a price entered as text.
func (f *ProductForm) SetPrice(s string) error {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	f.Price = price
	return nil
}

// SetCountInStock parses a stock count entered as text.
func (f *ProductForm) SetCountInStock(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid count in stock %q", s)
	}
	f.CountInStock = n
	return nil
}

// SetType accepts a plant type name in any letter case.
func (f *ProductForm) SetType(s string) error {
	for _, t := range model.PlantTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			f.Type = t
			return nil
		}
	}
	return fmt.Errorf("unknown plant type %q", s)
}
