// Package pdf genera el reporte PDF del historial de ofertas de una categoría.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Categoría + ID      │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OFERTA VIGENTE: estado / ventana / porcentaje              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Inicio | Fin | % | Estado | Actualizada         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de entradas                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SaleReportGenerator = (*SaleReportGenerator)(nil)

// SaleReportGenerator implementa ports.SaleReportGenerator usando Maroto v2.
type SaleReportGenerator struct {
	location *time.Location
}

// NewSaleReportGenerator construye el generador. Las fechas se imprimen en loc (UTC si es nil).
func NewSaleReportGenerator(loc *time.Location) *SaleReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleReportGenerator{location: loc}
}

// GenerateSaleHistory genera el PDF y devuelve sus bytes.
func (g *SaleReportGenerator) GenerateSaleHistory(_ context.Context, category *entity.Category, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de ofertas - "+category.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(category, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.currentSaleRow(category))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.historyRows(category.SaleHistory) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de entradas: %d", len(category.SaleHistory)), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *SaleReportGenerator) headerRow(c *entity.Category, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID: "+c.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HISTORIAL DE OFERTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+g.format(&generatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *SaleReportGenerator) currentSaleRow(c *entity.Category) core.Row {
	detail := "Sin oferta programada"
	if c.SaleStatus != entity.SaleInactive {
		detail = fmt.Sprintf("%s a %s   |   %s%%",
			g.format(c.SaleStartDate), g.format(c.SaleEndDate), c.SalePercentage.StringFixed(2))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("OFERTA VIGENTE: "+string(c.SaleStatus), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Inicio", 3, align.Left),
		h("Fin", 3, align.Left),
		h("%", 1, align.Right),
		h("Estado", 2, align.Center),
		h("Actualizada", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *SaleReportGenerator) historyRows(history []entity.SaleHistoryEntry) []core.Row {
	if len(history) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("La categoría no tiene ofertas registradas.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		))}
	}
	result := make([]core.Row, 0, len(history))
	for i, e := range history {
		updated := e.UpdatedAt
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.format(e.StartDate), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.format(e.EndDate), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(e.Percentage.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(string(e.Status), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.format(&updated), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *SaleReportGenerator) format(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(g.location).Format(dateLayout)
}
