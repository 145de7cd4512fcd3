package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Servings []string `json:"servings" validate:"required"`
}

// UpdateCategoryRequest entrada parcial para actualizar una categoría (no toca la oferta).
type UpdateCategoryRequest struct {
	Name        *string  `json:"name"`
	Servings    []string `json:"servings"`
	IsActive    *bool    `json:"isActive"`
	Highlighted *bool    `json:"highlighted"`
}

// UpdateSaleRequest entrada de PUT /categories/:id/update-sale.
// Los campos ausentes toman los valores actuales de la cabecera.
type UpdateSaleRequest struct {
	Action         string           `json:"action"`
	SaleStartDate  OptionalDate     `json:"saleStartDate"`
	SaleEndDate    OptionalDate     `json:"saleEndDate"`
	SalePercentage *decimal.Decimal `json:"salePercentage"`
}

// SaleHistoryEntryResponse entrada del historial de ofertas.
type SaleHistoryEntryResponse struct {
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     string          `json:"status"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	IsActive       bool                       `json:"isActive"`
	Highlighted    bool                       `json:"highlighted"`
	Servings       []string                   `json:"servings"`
	ServingsCount  int                        `json:"servingsCount"`
	ProductCount   int                        `json:"productCount"`
	SaleStatus     string                     `json:"saleStatus"`
	SaleStartDate  *time.Time                 `json:"saleStartDate"`
	SaleEndDate    *time.Time                 `json:"saleEndDate"`
	SalePercentage decimal.Decimal            `json:"salePercentage"`
	SaleHistory    []SaleHistoryEntryResponse `json:"saleHistory"`
	Version        int                        `json:"version"`
	CreatedAt      time.Time                  `json:"createdAt"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}

// CategoryEnvelope respuesta {message, category} de create/update/update-sale.
type CategoryEnvelope struct {
	Message  string            `json:"message"`
	Category *CategoryResponse `json:"category"`
}
