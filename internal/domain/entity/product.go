package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Category guarda el nombre de la categoría.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	Price       decimal.Decimal
	Description string
	SKU         string
	Images      []string
	Videos      []string
	InStock     bool
	Ratings     decimal.Decimal
	Dimensions  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
