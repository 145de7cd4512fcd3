package entity

import "time"

// ImageOrder lista ordenada de URLs de imágenes; el documento más reciente es el vigente.
type ImageOrder struct {
	ID        string
	URLs      []string
	UpdatedAt time.Time
}
