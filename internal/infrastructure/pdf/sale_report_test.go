package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
)

func TestGenerateSaleHistory_ProducePDF(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := now.Add(-24*time.Hour), now.Add(48*time.Hour)
	category := &entity.Category{
		ID:             "cat-1",
		Name:           "Bebidas",
		SaleStatus:     entity.SaleActive,
		SaleStartDate:  &start,
		SaleEndDate:    &end,
		SalePercentage: decimal.NewFromInt(25),
		SaleHistory: []entity.SaleHistoryEntry{
			{StartDate: &start, EndDate: &end, Percentage: decimal.NewFromInt(25), Status: entity.SaleActive, UpdatedAt: now},
		},
	}

	doc, err := pdf.NewSaleReportGenerator(nil).GenerateSaleHistory(context.Background(), category, now)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateSaleHistory_SinHistorial(t *testing.T) {
	category := &entity.Category{ID: "cat-2", Name: "Postres", SaleStatus: entity.SaleInactive}

	doc, err := pdf.NewSaleReportGenerator(time.UTC).GenerateSaleHistory(context.Background(), category, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
