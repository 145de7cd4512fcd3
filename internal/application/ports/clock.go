package ports

import (
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Clock entrega el instante actual; los tests inyectan uno fijo.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema normalizado a la precisión del store.
type SystemClock struct{}

// Now implementa Clock.
func (SystemClock) Now() time.Time { return entity.Instant(time.Now()) }
