package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dashboard"
	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	apphttp "github.com/jhoicas/awb-weight-dashboard/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/awb-weight-dashboard/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type stubSource struct {
	snap      entity.Snapshot
	refreshes int
}

func (s *stubSource) GetOrRefresh(context.Context) entity.Snapshot { return s.snap }

func (s *stubSource) Refresh(context.Context) entity.Snapshot {
	s.refreshes++
	return s.snap
}

type stubGenerator struct{}

func (stubGenerator) GenerateDashboardPDF(context.Context, *dto.DashboardDTO) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func okSnapshot() entity.Snapshot {
	return entity.Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Rows: entity.RowSet{
			Schema: entity.NewSchema(entity.ColumnAWB, entity.ColumnGrossWeight, entity.ColumnDifference),
			Records: []entity.Record{
				{AWB: "1230001", GrossWeight: num("100"), Difference: num("0.5")},
				{AWB: "1230002", GrossWeight: num("100"), Difference: num("-5")},
				{AWB: "9990003", GrossWeight: num("100"), Difference: num("2")},
			},
		},
	}
}

// buildTestApp arma la app Fiber con el router real sobre una fuente fija.
func buildTestApp(src *stubSource, jwtSecret string) *fiber.App {
	uc := dashboard.NewDashboardUseCase(src, time.Minute, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: uc,
		ReportUC:    dashboard.NewReportUseCase(uc, stubGenerator{}),
		JWTSecret:   jwtSecret,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboard_200ConFiltros(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard?awb=123&status=ERROR", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.DashboardDTO](t, resp)
	assert.Equal(t, 3, body.KPIs.TotalAWB)
	assert.Equal(t, 1, body.KPIs.Errors)
	assert.Equal(t, 1, body.KPIs.Warnings)
	require.Len(t, body.Table.Rows, 1)
	assert.Equal(t, "1230002", body.Table.Rows[0]["awb"])
	assert.Equal(t, "-5", body.Table.Rows[0]["difference_percent"], "decimal serializado como string")
	assert.Equal(t, 1, body.Errors.Count)
}

func TestGetDashboard_FiltroInvalido_400(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard?status=CRITICAL", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_FILTER")
}

func TestGetSummary_CargaFallidaEs200ConMensaje(t *testing.T) {
	failed := entity.FailedSnapshot(fmt.Errorf("%w: HTTP 500", domain.ErrFetchFailed), time.Now())
	app := buildTestApp(&stubSource{snap: failed}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/summary", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[dto.SummaryDTO](t, resp)
	assert.Equal(t, dto.KPIDTO{}, body.KPIs)
	assert.NotEmpty(t, body.Message)
}

func TestGetRecordsYErrors(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/records?awb=999", "")
	defer resp.Body.Close()
	records := decode[dto.TableDTO](t, resp)
	assert.Equal(t, 1, records.Count)
	assert.Equal(t, []string{"awb", "gross_weight", "difference", "difference_percent", "status"}, records.Columns)

	resp2 := doRequest(t, app, http.MethodGet, "/api/dashboard/errors?status=OK", "")
	defer resp2.Body.Close()
	errs := decode[dto.TableDTO](t, resp2)
	assert.Equal(t, 1, errs.Count, "la tabla de errores ignora los filtros")
}

func TestGetHistory_Deshabilitado_404(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/history", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportPDF(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, "")

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard/report.pdf?status=ERROR", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.3 stub", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh + auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_SinSecretNoRequiereToken(t *testing.T) {
	src := &stubSource{snap: okSnapshot()}
	app := buildTestApp(src, "")

	resp := doRequest(t, app, http.MethodPost, "/api/dashboard/refresh", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, src.refreshes)
}

func TestRefresh_ConSecret_SinToken_401(t *testing.T) {
	src := &stubSource{snap: okSnapshot()}
	app := buildTestApp(src, testJWTSecret)

	resp := doRequest(t, app, http.MethodPost, "/api/dashboard/refresh", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, src.refreshes)
}

func TestRefresh_ConSecret_TokenOperador_200(t *testing.T) {
	src := &stubSource{snap: okSnapshot()}
	app := buildTestApp(src, testJWTSecret)
	tok, err := pkgjwt.Generate(testJWTSecret, "ops", apphttp.RoleOperator, "awb-test", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPost, "/api/dashboard/refresh", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, src.refreshes)
}

func TestRefresh_ConSecret_RolSinPermiso_403(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, testJWTSecret)
	tok, err := pkgjwt.Generate(testJWTSecret, "viewer", "viewer", "awb-test", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPost, "/api/dashboard/refresh", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRefresh_TokenInvalido_401(t *testing.T) {
	app := buildTestApp(&stubSource{snap: okSnapshot()}, testJWTSecret)

	resp := doRequest(t, app, http.MethodPost, "/api/dashboard/refresh", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
