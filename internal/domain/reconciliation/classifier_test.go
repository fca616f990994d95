package reconciliation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/reconciliation"
)

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify: límites de los buckets
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Limites(t *testing.T) {
	cases := []struct {
		pct  string
		want entity.Status
	}{
		{"0", entity.StatusOK},
		{"1.00", entity.StatusOK},
		{"-1.00", entity.StatusOK},
		{"1.01", entity.StatusWarning},
		{"-2.5", entity.StatusWarning},
		{"3.00", entity.StatusWarning},
		{"-3.00", entity.StatusWarning},
		{"3.01", entity.StatusError},
		{"-3.01", entity.StatusError},
		{"150", entity.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.pct, func(t *testing.T) {
			assert.Equal(t, tc.want, reconciliation.Classify(num(tc.pct), true))
		})
	}
}

func TestClassify_NuloOColumnaAusente_NoData(t *testing.T) {
	assert.Equal(t, entity.StatusNoData, reconciliation.Classify(decimal.NullDecimal{}, true))
	assert.Equal(t, entity.StatusNoData, reconciliation.Classify(num("0.5"), false))
}

// ──────────────────────────────────────────────────────────────────────────────
// DifferencePercent
// ──────────────────────────────────────────────────────────────────────────────

func TestDifferencePercent_Derivacion(t *testing.T) {
	got := reconciliation.DifferencePercent(num("-5"), num("100"))
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.RequireFromString("-5.00")), "got %s", got.Decimal)
}

func TestDifferencePercent_RedondeaADosDecimales(t *testing.T) {
	got := reconciliation.DifferencePercent(num("1"), num("3"))
	require.True(t, got.Valid)
	assert.Equal(t, "33.33", got.Decimal.StringFixed(2))

	got = reconciliation.DifferencePercent(num("2"), num("3"))
	require.True(t, got.Valid)
	assert.Equal(t, "66.67", got.Decimal.StringFixed(2))
}

func TestDifferencePercent_NuloSiFaltaDatoOPesoCero(t *testing.T) {
	assert.False(t, reconciliation.DifferencePercent(num("5"), num("0")).Valid, "gross_weight cero")
	assert.False(t, reconciliation.DifferencePercent(num("5"), decimal.NullDecimal{}).Valid, "gross_weight nulo")
	assert.False(t, reconciliation.DifferencePercent(decimal.NullDecimal{}, num("10")).Valid, "difference nulo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Enrich
// ──────────────────────────────────────────────────────────────────────────────

func TestEnrich_DerivaPorcentajeYClasifica(t *testing.T) {
	rs := entity.RowSet{
		Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight, entity.ColumnDifference),
		Records: []entity.Record{
			{AWB: "A1", GrossWeight: num("100"), Difference: num("-5")},
			{AWB: "A2", GrossWeight: num("100"), Difference: num("1")},
			{AWB: "A3", GrossWeight: num("0"), Difference: num("1")},
			{AWB: "A4", GrossWeight: num("200"), Difference: num("5")},
		},
	}

	out := reconciliation.Enrich(rs)

	require.True(t, out.Has(entity.ColumnDifferencePercent))
	require.True(t, out.Has(entity.ColumnStatus))
	require.Len(t, out.Records, 4)

	assert.Equal(t, "-5.00", out.Records[0].DifferencePercent.Decimal.StringFixed(2))
	assert.Equal(t, entity.StatusError, out.Records[0].Status)
	assert.Equal(t, entity.StatusOK, out.Records[1].Status)
	assert.False(t, out.Records[2].DifferencePercent.Valid)
	assert.Equal(t, entity.StatusNoData, out.Records[2].Status)
	assert.Equal(t, entity.StatusWarning, out.Records[3].Status, "5/200 = 2.5 por ciento")
}

func TestEnrich_NoModificaEntrada(t *testing.T) {
	rs := entity.RowSet{
		Schema:  entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight, entity.ColumnDifference),
		Records: []entity.Record{{AWB: "A1", GrossWeight: num("100"), Difference: num("10")}},
	}

	_ = reconciliation.Enrich(rs)

	assert.False(t, rs.Has(entity.ColumnStatus))
	assert.Equal(t, entity.Status(""), rs.Records[0].Status)
	assert.False(t, rs.Records[0].DifferencePercent.Valid)
}

func TestEnrich_SinColumnasParaDerivar_TodoNoData(t *testing.T) {
	// Esquema crudo (fallback posicional): solo awb y gross_weight.
	rs := entity.RowSet{
		Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight),
		Records: []entity.Record{
			{AWB: "A1", GrossWeight: num("12.5")},
			{AWB: "A2"},
		},
	}

	out := reconciliation.Enrich(rs)

	assert.False(t, out.Has(entity.ColumnDifferencePercent))
	for _, r := range out.Records {
		assert.Equal(t, entity.StatusNoData, r.Status)
	}
}

func TestEnrich_RespetaPorcentajeSuministrado(t *testing.T) {
	// difference_percent presente: no se recalcula aunque difference/gross discrepen.
	rs := entity.RowSet{
		Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight,
			entity.ColumnDifference, entity.ColumnDifferencePercent),
		Records: []entity.Record{
			{AWB: "A1", GrossWeight: num("100"), Difference: num("50"), DifferencePercent: num("0.4")},
			{AWB: "A2", GrossWeight: num("100"), Difference: num("50")},
		},
	}

	out := reconciliation.Enrich(rs)

	assert.Equal(t, "0.4", out.Records[0].DifferencePercent.Decimal.String())
	assert.Equal(t, entity.StatusOK, out.Records[0].Status)
	assert.Equal(t, entity.StatusNoData, out.Records[1].Status, "celda vacía en columna presente")
}

func TestEnrich_Idempotente(t *testing.T) {
	rs := entity.RowSet{
		Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight, entity.ColumnDifference),
		Records: []entity.Record{
			{AWB: "A1", GrossWeight: num("100"), Difference: num("-5")},
			{AWB: "A2", GrossWeight: num("80"), Difference: num("2")},
		},
	}

	once := reconciliation.Enrich(rs)
	twice := reconciliation.Enrich(once)

	assert.Equal(t, once, twice)
}

func TestEnrich_StatusSiempreValido(t *testing.T) {
	rs := entity.RowSet{
		Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnDifferencePercent),
		Records: []entity.Record{
			{AWB: "1", DifferencePercent: num("0.99")},
			{AWB: "2", DifferencePercent: num("2")},
			{AWB: "3", DifferencePercent: num("-40")},
			{AWB: "4"},
		},
	}

	for _, r := range reconciliation.Enrich(rs).Records {
		_, ok := entity.ParseStatus(string(r.Status))
		assert.True(t, ok, "status inesperado %q", r.Status)
	}
}
