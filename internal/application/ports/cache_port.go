package ports

import "context"

// ImageOrderCache caché de lectura del orden de imágenes.
// Get devuelve ok=false cuando no hay valor en caché.
type ImageOrderCache interface {
	Get(ctx context.Context) (urls []string, ok bool, err error)
	Set(ctx context.Context, urls []string) error
}
