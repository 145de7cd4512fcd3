package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una oferta. La cabecera de la categoría solo usa
// Inactive, Active y Pending; Concluded y Cancelled son terminales del historial.
type SaleStatus string

const (
	SaleInactive  SaleStatus = "Inactive"
	SaleActive    SaleStatus = "Active"
	SalePending   SaleStatus = "Pending"
	SaleConcluded SaleStatus = "Concluded"
	SaleCancelled SaleStatus = "Cancelled"
)

// IsHead informa si el estado es válido para la cabecera de la categoría.
func (s SaleStatus) IsHead() bool {
	return s == SaleInactive || s == SaleActive || s == SalePending
}

// IsValid informa si el estado es válido para una entrada de historial.
func (s SaleStatus) IsValid() bool {
	return s.IsHead() || s == SaleConcluded || s == SaleCancelled
}

// IsTerminal informa si el estado ya no admite transiciones.
func (s SaleStatus) IsTerminal() bool {
	return s == SaleConcluded || s == SaleCancelled
}

var hundred = decimal.NewFromInt(100)

// SaleHistoryEntry registro de auditoría de una ventana de oferta.
type SaleHistoryEntry struct {
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     SaleStatus      `json:"status"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Category agregado raíz: datos de catálogo más la cabecera de oferta y su historial.
type Category struct {
	ID            string
	Name          string
	IsActive      bool
	Highlighted   bool
	Servings      []string
	ServingsCount int
	ProductCount  int

	SaleStatus     SaleStatus
	SaleStartDate  *time.Time
	SaleEndDate    *time.Time
	SalePercentage decimal.Decimal
	SaleHistory    []SaleHistoryEntry

	// Version se incrementa en cada guardado (compare-and-swap en el store).
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClearSale deja la cabecera sin oferta: Inactive, fechas nulas y porcentaje 0.
func (c *Category) ClearSale() {
	c.SaleStatus = SaleInactive
	c.SaleStartDate = nil
	c.SaleEndDate = nil
	c.SalePercentage = decimal.Zero
}

// SetSale fija la cabecera de oferta.
func (c *Category) SetSale(start, end *time.Time, percentage decimal.Decimal, status SaleStatus) {
	c.SaleStartDate = start
	c.SaleEndDate = end
	c.SalePercentage = percentage
	c.SaleStatus = status
}

// Validate comprueba las invariantes del documento antes de persistirlo.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category: name requerido")
	}
	if !c.SaleStatus.IsHead() {
		return fmt.Errorf("category: saleStatus %q inválido", c.SaleStatus)
	}
	if err := ValidatePercentage(c.SalePercentage); err != nil {
		return err
	}
	if c.SaleStatus == SaleInactive {
		if c.SaleStartDate != nil || c.SaleEndDate != nil || !c.SalePercentage.IsZero() {
			return fmt.Errorf("category: oferta inactiva con fechas o porcentaje")
		}
	} else {
		if c.SaleStartDate == nil || c.SaleEndDate == nil {
			return fmt.Errorf("category: oferta %s sin fechas", c.SaleStatus)
		}
		if c.SaleStartDate.After(*c.SaleEndDate) {
			return fmt.Errorf("category: saleStartDate posterior a saleEndDate")
		}
	}
	for i, e := range c.SaleHistory {
		if !e.Status.IsValid() {
			return fmt.Errorf("category: saleHistory[%d] status %q inválido", i, e.Status)
		}
		if err := ValidatePercentage(e.Percentage); err != nil {
			return fmt.Errorf("category: saleHistory[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidatePercentage exige un porcentaje en [0, 100] con a lo sumo dos decimales
// (la precisión de la columna sale_percentage, igual en cabecera e historial).
func ValidatePercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("porcentaje %s fuera de rango [0, 100]", p.String())
	}
	if !p.Equal(p.Round(2)) {
		return fmt.Errorf("porcentaje %s con más de dos decimales", p.String())
	}
	return nil
}

// Instant normaliza un instante a la precisión del store (microsegundos, UTC)
// para que la igualdad exacta sobreviva a un guardado y relectura.
func Instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
