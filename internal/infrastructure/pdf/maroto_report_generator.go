// Package pdf genera la exportación PDF del dashboard de conciliación de pesos.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + snapshot / fecha de carga                  │
//	│  KPIs: Total AWB | OK | Warnings | Errors | No data          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: filas filtradas (columnas presentes)                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ERRORES: filas en ERROR sobre el conjunto completo          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dashboard"
	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
)

var _ dashboard.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 30, Green: 130, Blue: 60}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorError   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// columnWidths ancho (sobre 12) de cada columna; con las 8 columnas suman 12.
var columnWidths = map[string]int{
	string(entity.ColumnAWB):               2,
	string(entity.ColumnParcelNet):         1,
	string(entity.ColumnBoxWeight):         1,
	string(entity.ColumnGrossWeight):       2,
	string(entity.ColumnCalculatedTotal):   1,
	string(entity.ColumnDifference):        1,
	string(entity.ColumnDifferencePercent): 2,
	string(entity.ColumnStatus):            2,
}

// MarotoReportGenerator implementa dashboard.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador con el título del reporte.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	return &MarotoReportGenerator{title: title}
}

// GenerateDashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardPDF(_ context.Context, report *dto.DashboardDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(kpiRow(report.KPIs))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if report.Message != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(report.Message, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorError, Top: 2}),
		)))
	}

	m.AddRows(sectionRow(fmt.Sprintf("Guías (%d) · filtro AWB %q · estado %s",
		report.Table.Count, report.Filters.AWB, report.Filters.Status)))
	m.AddRows(tableRows(report.Table)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionRow(fmt.Sprintf("Guías en ERROR (%d)", report.Errors.Count)))
	m.AddRows(tableRows(report.Errors)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(report *dto.DashboardDTO) core.Row {
	loaded := "-"
	if report.Snapshot.LoadedAt != nil {
		loaded = report.Snapshot.LoadedAt.Format("02/01/2006 15:04 MST")
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Datos cargados: "+loaded, props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
			text.New("Snapshot: "+nonEmpty(report.Snapshot.ID, "-"), props.Text{
				Size: 6.5, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func kpiRow(k dto.KPIDTO) core.Row {
	kpi := func(label string, value int, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 5,
			}),
		)
	}
	return row.New(16).Add(
		col.New(1),
		kpi("Total AWB", k.TotalAWB, colorPrimary),
		kpi("OK", k.OK, colorOK),
		kpi("Warnings", k.Warnings, colorWarning),
		kpi("Errors", k.Errors, colorError),
		kpi("No data", k.NoData, colorGray),
		col.New(1),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

// tableRows cabecera + una fila por registro, solo con las columnas presentes.
func tableRows(t dto.TableDTO) []core.Row {
	if len(t.Columns) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}

	header := make([]core.Col, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, col.New(columnWidths[c]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: alignFor(c), Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		})))
	}
	rows := []core.Row{row.New(6).Add(header...)}

	for _, r := range t.Rows {
		cells := make([]core.Col, 0, len(t.Columns))
		for _, c := range t.Columns {
			value := cellText(r[c])
			p := props.Text{Size: 7, Align: alignFor(c), Top: 0.5, Left: 1, Right: 1}
			if c == string(entity.ColumnStatus) {
				p.Style = fontstyle.Bold
				p.Color = statusColor(value)
			}
			cells = append(cells, col.New(columnWidths[c]).Add(text.New(value, p)))
		}
		rows = append(rows, row.New(5).Add(cells...))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func alignFor(column string) align.Type {
	switch column {
	case string(entity.ColumnAWB):
		return align.Left
	case string(entity.ColumnStatus):
		return align.Center
	default:
		return align.Right
	}
}

func statusColor(status string) *props.Color {
	switch entity.Status(status) {
	case entity.StatusOK:
		return colorOK
	case entity.StatusWarning:
		return colorWarning
	case entity.StatusError:
		return colorError
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
