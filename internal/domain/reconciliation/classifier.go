// Package reconciliation contiene la regla de conciliación de pesos por guía:
// el cálculo de difference_percent y la clasificación OK/WARNING/ERROR/NO DATA.
package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)

	// Límites inclusivos: |x| <= 1 es OK, |x| <= 3 es WARNING.
	okLimit      = decimal.NewFromInt(1)
	warningLimit = decimal.NewFromInt(3)
)

// DifferencePercent = difference / gross_weight * 100, redondeado a 2 decimales.
// Nulo si falta alguno de los dos valores o si gross_weight es cero.
func DifferencePercent(difference, grossWeight decimal.NullDecimal) decimal.NullDecimal {
	if !difference.Valid || !grossWeight.Valid || grossWeight.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	pct := difference.Decimal.Mul(hundred).Div(grossWeight.Decimal).Round(2)
	return decimal.NewNullDecimal(pct)
}

// Classify asigna el estado a partir de difference_percent.
// columnPresent=false equivale a que el RowSet no tenga la columna.
func Classify(differencePercent decimal.NullDecimal, columnPresent bool) entity.Status {
	if !columnPresent || !differencePercent.Valid {
		return entity.StatusNoData
	}
	abs := differencePercent.Decimal.Abs()
	switch {
	case abs.LessThanOrEqual(okLimit):
		return entity.StatusOK
	case abs.LessThanOrEqual(warningLimit):
		return entity.StatusWarning
	default:
		return entity.StatusError
	}
}

// Enrich garantiza difference_percent y status en todas las filas.
//
// Si el RowSet ya trae status se devuelve tal cual (re-enriquecer es un no-op).
// difference_percent solo se deriva cuando falta y existen difference y gross_weight.
// Nunca modifica rs: devuelve un RowSet nuevo.
func Enrich(rs entity.RowSet) entity.RowSet {
	if rs.Has(entity.ColumnStatus) {
		return rs
	}

	schema := rs.Schema
	derive := !schema.Has(entity.ColumnDifferencePercent) &&
		schema.Has(entity.ColumnDifference) &&
		schema.Has(entity.ColumnGrossWeight)
	if derive {
		schema = schema.With(entity.ColumnDifferencePercent)
	}
	hasPercent := schema.Has(entity.ColumnDifferencePercent)

	records := make([]entity.Record, len(rs.Records))
	for i, r := range rs.Records {
		if derive {
			r.DifferencePercent = DifferencePercent(r.Difference, r.GrossWeight)
		}
		r.Status = Classify(r.DifferencePercent, hasPercent)
		records[i] = r
	}

	return entity.RowSet{Schema: schema.With(entity.ColumnStatus), Records: records}
}
