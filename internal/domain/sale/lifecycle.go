// Package sale implementa la máquina de estados de ofertas por categoría
// (servicio de dominio sin I/O).
//
// La cabecera de la categoría (saleStatus, saleStartDate, saleEndDate,
// salePercentage) es la "punta" de la línea de tiempo; SaleHistory es el
// registro de auditoría. Cada acción administrativa muta la cabecera y
// agrega o modifica entradas del historial; nunca se eliminan entradas.
//
// Estados por entrada:
//
//	Pending ──▶ Active ──▶ Concluded
//	   │           │
//	   └───────────┴─────▶ Cancelled
//
// Concluded y Cancelled son terminales: una oferta nueva siempre crea una entrada nueva.
package sale

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Action acción administrativa sobre la oferta de una categoría.
type Action string

const (
	ActionStartNow Action = "startNow"
	ActionCancel   Action = "cancelSale"
	ActionEndNow   Action = "endNow"
	ActionUpdate   Action = "updateSale"
)

// Ramas efectivas ejecutadas por Apply (etiquetas de logs y métricas).
const (
	BranchStartNow   = "startNow"
	BranchCancel     = "cancelSale"
	BranchEndNow     = "endNow"
	BranchInPlace    = "updateSale.inPlace"
	BranchReschedule = "updateSale.reschedule"
	BranchPending    = "updateSale.pending"
	BranchSchedule   = "schedule"
)

// Command parámetros de una acción. Los campos nil toman el valor de la cabecera.
type Command struct {
	Action     Action
	StartDate  *time.Time
	EndDate    *time.Time
	Percentage *decimal.Decimal
}

// Transition resume el efecto de Apply sobre la categoría.
type Transition struct {
	Branch string
	From   entity.SaleStatus
	To     entity.SaleStatus
	// Implicit indica que, antes de la acción, la cabecera cambió de estado
	// solo por el paso del tiempo (p. ej. Pending cuya ventana ya empezó).
	Implicit bool
}

// Apply ejecuta la acción sobre c en el instante now. Valida antes de mutar:
// si devuelve error, la cabecera y el historial quedan como estaban salvo la
// transición implícita por calendario.
func Apply(c *entity.Category, cmd Command, now time.Time) (Transition, error) {
	if cmd.Percentage != nil {
		if err := entity.ValidatePercentage(*cmd.Percentage); err != nil {
			return Transition{}, invalid("%v", err)
		}
	}
	t := Transition{From: c.SaleStatus}
	t.Implicit = Refresh(c, now)

	var err error
	switch cmd.Action {
	case ActionStartNow:
		t.Branch, err = startNow(c, cmd, now)
	case ActionCancel:
		t.Branch = cancelSale(c, now)
	case ActionEndNow:
		t.Branch, err = endNow(c, now)
	case ActionUpdate:
		t.Branch, err = updateSale(c, cmd, now)
	default:
		t.Branch, err = schedule(c, cmd, now)
	}
	if err != nil {
		return Transition{}, err
	}
	t.To = c.SaleStatus
	return t, nil
}

// DeriveStatus calcula el estado de la cabecera a partir de la ventana:
// Active si now ∈ [start, end], Pending si now < start, Inactive en otro caso
// (incluidas fechas nulas).
func DeriveStatus(start, end *time.Time, now time.Time) entity.SaleStatus {
	if start == nil || end == nil {
		return entity.SaleInactive
	}
	if now.Before(*start) {
		return entity.SalePending
	}
	if now.After(*end) {
		return entity.SaleInactive
	}
	return entity.SaleActive
}

// Refresh aplica la transición por calendario: si el estado guardado ya no
// coincide con el derivado de las fechas, corrige la cabecera y su entrada.
func Refresh(c *entity.Category, now time.Time) bool {
	if c.SaleStatus == entity.SaleInactive && c.SaleStartDate == nil && c.SaleEndDate == nil {
		return false
	}
	if DeriveStatus(c.SaleStartDate, c.SaleEndDate, now) == c.SaleStatus {
		return false
	}
	settle(c, headEntry(c), now)
	return true
}

func startNow(c *entity.Category, cmd Command, now time.Time) (string, error) {
	idx, found := MostRecent(c.SaleHistory, WithStatus(entity.SalePending))
	if !found {
		// Refresh pudo haber pasado la entrada de la cabecera a Active: se reinicia esa misma.
		if h := headEntry(c); h >= 0 {
			idx, found = h, true
		}
	}

	end := cmd.EndDate
	pct := cmd.Percentage
	switch {
	case found:
		if end == nil {
			end = c.SaleHistory[idx].EndDate
		}
		if pct == nil {
			pct = &c.SaleHistory[idx].Percentage
		}
	default:
		if end == nil {
			end = c.SaleEndDate
		}
		if pct == nil {
			pct = &c.SalePercentage
		}
	}
	if end == nil {
		return "", invalid("startNow requiere saleEndDate")
	}
	if end.Before(now) {
		return "", invalid("startNow con saleEndDate ya vencida")
	}

	start := now
	percentage := *pct
	end = clone(end)
	if found {
		e := &c.SaleHistory[idx]
		e.StartDate = clone(&start)
		e.EndDate = clone(end)
		e.Percentage = percentage
		e.Status = entity.SaleActive
		e.UpdatedAt = now
	}
	c.SetSale(&start, end, percentage, entity.SaleActive)
	return BranchStartNow, nil
}

func cancelSale(c *entity.Category, now time.Time) string {
	if n := len(c.SaleHistory); n > 0 {
		e := &c.SaleHistory[n-1]
		e.Status = entity.SaleCancelled
		e.UpdatedAt = now
	}
	c.ClearSale()
	return BranchCancel
}

func endNow(c *entity.Category, now time.Time) (string, error) {
	if c.SaleStatus != entity.SaleActive {
		return "", invalid("no hay una oferta activa para finalizar")
	}
	if idx := FindActive(c.SaleHistory, c.SaleStartDate); idx >= 0 {
		e := &c.SaleHistory[idx]
		e.EndDate = clone(&now)
		e.Status = entity.SaleConcluded
		e.UpdatedAt = now
	} else {
		c.SaleHistory = append(c.SaleHistory, entity.SaleHistoryEntry{
			StartDate:  clone(c.SaleStartDate),
			EndDate:    clone(&now),
			Percentage: c.SalePercentage,
			Status:     entity.SaleConcluded,
			UpdatedAt:  now,
		})
	}
	c.ClearSale()
	return BranchEndNow, nil
}

// updateSale evalúa los sub-casos como lista de decisión excluyente:
// edición en sitio, reprogramación, refresco de pendiente y, si la cabecera
// no tiene oferta, la rama de calendario.
func updateSale(c *entity.Category, cmd Command, now time.Time) (string, error) {
	start, end, pct, err := resolveWindow(c, cmd)
	if err != nil {
		return "", err
	}

	switch c.SaleStatus {
	case entity.SaleActive:
		if sameInstant(start, c.SaleStartDate) {
			idx := FindActive(c.SaleHistory, c.SaleStartDate)
			if idx >= 0 {
				e := &c.SaleHistory[idx]
				e.EndDate = clone(end)
				e.Percentage = pct
				e.UpdatedAt = now
			}
			c.SaleEndDate = clone(end)
			c.SalePercentage = pct
			settle(c, idx, now)
			return BranchInPlace, nil
		}

		if idx := FindActive(c.SaleHistory, c.SaleStartDate); idx >= 0 {
			e := &c.SaleHistory[idx]
			e.EndDate = clone(&now)
			e.Status = entity.SaleConcluded
			e.UpdatedAt = now
		}
		c.SaleHistory = append(c.SaleHistory, newEntry(start, end, pct, entity.SalePending, now))
		c.SetSale(clone(start), clone(end), pct, entity.SalePending)
		settle(c, len(c.SaleHistory)-1, now)
		return BranchReschedule, nil

	case entity.SalePending:
		idx, found := MostRecent(c.SaleHistory, WithStatus(entity.SalePending))
		if found {
			e := &c.SaleHistory[idx]
			e.StartDate = clone(start)
			e.EndDate = clone(end)
			e.Percentage = pct
			e.UpdatedAt = now
		} else {
			c.SaleHistory = append(c.SaleHistory, newEntry(start, end, pct, entity.SalePending, now))
			idx = len(c.SaleHistory) - 1
		}
		c.SetSale(clone(start), clone(end), pct, entity.SalePending)
		settle(c, idx, now)
		return BranchPending, nil
	}

	return schedule(c, cmd, now)
}

// schedule es la rama implícita: registra la ventana propuesta con el estado
// que le corresponde según now.
func schedule(c *entity.Category, cmd Command, now time.Time) (string, error) {
	start, end, pct, err := resolveWindow(c, cmd)
	if err != nil {
		return "", err
	}
	if end.Before(now) {
		c.SaleHistory = append(c.SaleHistory, newEntry(start, end, pct, entity.SaleConcluded, now))
		c.ClearSale()
		return BranchSchedule, nil
	}
	status := DeriveStatus(start, end, now)
	c.SetSale(clone(start), clone(end), pct, status)
	c.SaleHistory = append(c.SaleHistory, newEntry(start, end, pct, status, now))
	return BranchSchedule, nil
}

// settle vuelve a derivar el estado de la cabecera desde su ventana y alinea
// la entrada idx (si existe): Active/Pending se copian, una ventana vencida
// concluye la entrada y limpia la cabecera.
func settle(c *entity.Category, idx int, now time.Time) {
	status := DeriveStatus(c.SaleStartDate, c.SaleEndDate, now)
	if idx >= 0 && idx < len(c.SaleHistory) {
		next := status
		if status == entity.SaleInactive {
			next = entity.SaleConcluded
		}
		e := &c.SaleHistory[idx]
		if e.Status != next {
			e.Status = next
			e.UpdatedAt = now
		}
	}
	if status == entity.SaleInactive {
		c.ClearSale()
		return
	}
	c.SaleStatus = status
}

// headEntry devuelve la última entrada Active o Pending cuyo inicio coincide con la cabecera, o -1.
func headEntry(c *entity.Category) int {
	for i := len(c.SaleHistory) - 1; i >= 0; i-- {
		e := c.SaleHistory[i]
		if (e.Status == entity.SaleActive || e.Status == entity.SalePending) && sameInstant(e.StartDate, c.SaleStartDate) {
			return i
		}
	}
	return -1
}

func resolveWindow(c *entity.Category, cmd Command) (start, end *time.Time, pct decimal.Decimal, err error) {
	start, end, pct = c.SaleStartDate, c.SaleEndDate, c.SalePercentage
	if cmd.StartDate != nil {
		start = cmd.StartDate
	}
	if cmd.EndDate != nil {
		end = cmd.EndDate
	}
	if cmd.Percentage != nil {
		pct = *cmd.Percentage
	}
	if start == nil || end == nil {
		return nil, nil, decimal.Zero, invalid("saleStartDate y saleEndDate son requeridos")
	}
	if start.After(*end) {
		return nil, nil, decimal.Zero, invalid("saleStartDate posterior a saleEndDate")
	}
	return start, end, pct, nil
}

func newEntry(start, end *time.Time, pct decimal.Decimal, status entity.SaleStatus, now time.Time) entity.SaleHistoryEntry {
	return entity.SaleHistoryEntry{
		StartDate:  clone(start),
		EndDate:    clone(end),
		Percentage: pct,
		Status:     status,
		UpdatedAt:  now,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func clone(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
