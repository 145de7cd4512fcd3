// seed_catalog genera un script SQL para poblar categorías y productos a partir
// de la exportación CSV del catálogo anterior (hoja de cálculo en ISO-8859-1, separador ';').
//
// Columnas esperadas: categoria;nombre;marca;sku;precio;descripcion
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type seedProduct struct {
	category, name, brand, sku, description string
	price                                   decimal.Decimal
}

type seedCatalog struct {
	categories []string
	products   []seedProduct
	skipped    int
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := readCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías, %d productos (%d filas descartadas)\n",
		outPath, len(cat.categories), len(cat.products), cat.skipped)
}

// readCatalog lee el CSV ya decodificado a UTF-8. La primera fila es cabecera.
// Filas incompletas o con precio inválido se descartan.
func readCatalog(r io.Reader) (*seedCatalog, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}

	cat := &seedCatalog{}
	seenCat := map[string]bool{}
	seenName, seenSKU := map[string]bool{}, map[string]bool{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 6 {
			cat.skipped++
			continue
		}
		p := seedProduct{
			category:    clean(rec[0]),
			name:        clean(rec[1]),
			brand:       clean(rec[2]),
			sku:         clean(rec[3]),
			description: clean(rec[5]),
		}
		// La hoja usa coma decimal.
		price, err := decimal.NewFromString(strings.ReplaceAll(clean(rec[4]), ",", "."))
		if err != nil || price.IsNegative() || p.category == "" || p.name == "" || p.sku == "" {
			cat.skipped++
			continue
		}
		if seenName[p.name] || seenSKU[p.sku] {
			cat.skipped++
			continue
		}
		p.price = price.Round(2)
		seenName[p.name], seenSKU[p.sku] = true, true
		if !seenCat[p.category] {
			seenCat[p.category] = true
			cat.categories = append(cat.categories, p.category)
		}
		cat.products = append(cat.products, p)
	}
	sort.Strings(cat.categories)
	return cat, nil
}

func writeSQL(w io.Writer, cat *seedCatalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	if len(cat.categories) > 0 {
		b.WriteString("-- 1. Categorías\n")
		b.WriteString("INSERT INTO categories (id, name) VALUES\n")
		for i, c := range cat.categories {
			sep := ","
			if i == len(cat.categories)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s')%s\n", uuid.NewString(), escapeSQL(c), sep)
		}
		b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")
	}

	if len(cat.products) > 0 {
		b.WriteString("-- 2. Productos\n")
		b.WriteString("INSERT INTO products (id, name, brand, category, price, description, sku) VALUES\n")
		for i, p := range cat.products {
			sep := ","
			if i == len(cat.products)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, '%s', '%s')%s\n",
				uuid.NewString(), escapeSQL(p.name), escapeSQL(p.brand), escapeSQL(p.category),
				p.price.StringFixed(2), escapeSQL(p.description), escapeSQL(p.sku), sep)
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
