package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Resultados registrados por SaleRecorder.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// SaleRecorder registra cada operación del gestor de ofertas (métricas).
type SaleRecorder interface {
	RecordSaleOperation(branch, outcome string, duration time.Duration)
}

// NopSaleRecorder descarta las mediciones.
type NopSaleRecorder struct{}

// RecordSaleOperation implementa SaleRecorder.
func (NopSaleRecorder) RecordSaleOperation(string, string, time.Duration) {}

// SaleReportGenerator genera el reporte PDF del historial de ofertas de una categoría.
type SaleReportGenerator interface {
	GenerateSaleHistory(ctx context.Context, category *entity.Category, generatedAt time.Time) ([]byte, error)
}
