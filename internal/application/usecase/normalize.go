package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName recorta espacios y lleva el texto a NFC, así "Café" escrito
// con tilde combinada y con tilde precompuesta es el mismo nombre.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeServings normaliza cada porción y descarta las vacías.
func normalizeServings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normalizeName(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
