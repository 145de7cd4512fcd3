package sale

import (
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Predicate filtra entradas del historial.
type Predicate func(entity.SaleHistoryEntry) bool

// WithStatus selecciona entradas con el estado indicado.
func WithStatus(status entity.SaleStatus) Predicate {
	return func(e entity.SaleHistoryEntry) bool { return e.Status == status }
}

// MostRecent devuelve el índice de la entrada que cumple pred con el UpdatedAt
// más reciente. En empate gana la agregada después.
func MostRecent(history []entity.SaleHistoryEntry, pred Predicate) (int, bool) {
	best := -1
	for i, e := range history {
		if !pred(e) {
			continue
		}
		if best < 0 || !e.UpdatedAt.Before(history[best].UpdatedAt) {
			best = i
		}
	}
	return best, best >= 0
}

// FindActive devuelve el índice de la entrada Active cuyo inicio es el mismo
// instante que start, o -1.
func FindActive(history []entity.SaleHistoryEntry, start *time.Time) int {
	for i, e := range history {
		if e.Status == entity.SaleActive && sameInstant(e.StartDate, start) {
			return i
		}
	}
	return -1
}

func sameInstant(a, b *time.Time) bool {
	return a != nil && b != nil && a.Equal(*b)
}
