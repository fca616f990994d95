package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
)

// Summary conteos por estado sobre un RowSet enriquecido.
type Summary struct {
	Total   int
	OK      int
	Warning int
	Error   int
	NoData  int
}

// Summarize cuenta filas por status. Es la única regla de conteo: las tarjetas
// de KPI y la tabla de errores leen la misma columna status.
func Summarize(rs entity.RowSet) Summary {
	s := Summary{Total: rs.Len()}
	for _, r := range rs.Records {
		switch r.Status {
		case entity.StatusOK:
			s.OK++
		case entity.StatusWarning:
			s.Warning++
		case entity.StatusError:
			s.Error++
		case entity.StatusNoData:
			s.NoData++
		}
	}
	return s
}

// StatusFilter filtro exacto de estado para la tabla principal.
type StatusFilter string

const (
	FilterAll     StatusFilter = "ALL"
	FilterOK      StatusFilter = StatusFilter(entity.StatusOK)
	FilterWarning StatusFilter = StatusFilter(entity.StatusWarning)
	FilterError   StatusFilter = StatusFilter(entity.StatusError)
)

// ParseStatusFilter acepta ALL, OK, WARNING o ERROR. Vacío equivale a ALL.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.TrimSpace(s)); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterOK, FilterWarning, FilterError:
		return f, nil
	default:
		return "", fmt.Errorf("%w: status debe ser ALL, OK, WARNING o ERROR (recibido %q)", domain.ErrInvalidFilter, s)
	}
}

// Filter aplica el filtro de AWB (subcadena, sensible a mayúsculas; vacío = sin filtro)
// y el de estado (ALL = sin filtro). Ambos se combinan con AND. No modifica rs.
func Filter(rs entity.RowSet, awbQuery string, status StatusFilter) entity.RowSet {
	if awbQuery == "" && (status == FilterAll || status == "") {
		return rs
	}
	out := make([]entity.Record, 0, len(rs.Records))
	for _, r := range rs.Records {
		if awbQuery != "" && !strings.Contains(r.AWB, awbQuery) {
			continue
		}
		if status != FilterAll && status != "" && string(r.Status) != string(status) {
			continue
		}
		out = append(out, r)
	}
	return rs.WithRecords(out)
}

// ErrorsOnly filas con status ERROR. Se calcula siempre sobre el conjunto completo.
func ErrorsOnly(rs entity.RowSet) entity.RowSet {
	out := make([]entity.Record, 0)
	for _, r := range rs.Records {
		if r.Status == entity.StatusError {
			out = append(out, r)
		}
	}
	return rs.WithRecords(out)
}

// ProjectColumns columnas a mostrar: las candidatas en orden fijo que existan en el esquema.
func ProjectColumns(schema entity.Schema) []entity.Column {
	return schema.Columns()
}

// SortByDifferencePercent ordena por difference_percent descendente con los nulos al final.
// El orden entre filas iguales se conserva. Sin la columna devuelve rs sin cambios.
func SortByDifferencePercent(rs entity.RowSet) entity.RowSet {
	if !rs.Has(entity.ColumnDifferencePercent) {
		return rs
	}
	out := make([]entity.Record, len(rs.Records))
	copy(out, rs.Records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DifferencePercent, out[j].DifferencePercent
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.Decimal.GreaterThan(b.Decimal)
	})
	return rs.WithRecords(out)
}
