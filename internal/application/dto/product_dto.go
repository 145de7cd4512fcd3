package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Brand       string           `json:"brand" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description" validate:"required"`
	SKU         string           `json:"sku" validate:"required"`
	Images      []string         `json:"images"`
	Videos      []string         `json:"videos"`
	InStock     *bool            `json:"inStock"`
	Ratings     *decimal.Decimal `json:"ratings"`
	Dimensions  *string          `json:"dimensions"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Images      []string         `json:"images"`
	Videos      []string         `json:"videos"`
	InStock     *bool            `json:"inStock"`
	Ratings     *decimal.Decimal `json:"ratings"`
	Dimensions  *string          `json:"dimensions"`
}

// ProductResponse salida de un producto. SalePrice solo viene cuando la
// categoría del producto tiene una oferta vigente.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	Images      []string         `json:"images"`
	Videos      []string         `json:"videos"`
	InStock     bool             `json:"inStock"`
	Ratings     decimal.Decimal  `json:"ratings"`
	Dimensions  string           `json:"dimensions"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductEnvelope respuesta {message, product}.
type ProductEnvelope struct {
	Message string           `json:"message"`
	Product *ProductResponse `json:"product"`
}
