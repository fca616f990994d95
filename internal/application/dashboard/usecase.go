// Package dashboard compone el pipeline Loader → Enricher → Presenter y arma
// las respuestas del dashboard de conciliación de pesos por AWB.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/reconciliation"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// DashboardUseCase construye KPIs y tablas a partir del snapshot en caché.
//
// Cada llamada es una función pura del snapshot y de los filtros: el único
// estado compartido es la caché del loader.
type DashboardUseCase struct {
	source  SnapshotSource
	ttl     time.Duration
	history repository.SnapshotRepository // nil = historial deshabilitado
}

// NewDashboardUseCase construye el caso de uso. ttl solo se usa para informar next_refresh_at.
func NewDashboardUseCase(source SnapshotSource, ttl time.Duration, history repository.SnapshotRepository) *DashboardUseCase {
	return &DashboardUseCase{source: source, ttl: ttl, history: history}
}

// view snapshot enriquecido listo para filtrar.
type view struct {
	snap    entity.Snapshot
	rows    entity.RowSet
	summary Summary
	columns []entity.Column
}

func (uc *DashboardUseCase) view(snap entity.Snapshot) view {
	rows := snap.Rows
	if !snap.Failed() {
		rows = reconciliation.Enrich(rows)
	}
	return view{
		snap:    snap,
		rows:    rows,
		summary: Summarize(rows),
		columns: ProjectColumns(rows.Schema),
	}
}

// GetDashboard KPIs, tabla filtrada y tabla de errores en una sola respuesta.
// Solo falla por filtros inválidos; un error de carga viaja en Message.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error) {
	filter, err := ParseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	v := uc.view(uc.source.GetOrRefresh(ctx))
	filtered := SortByDifferencePercent(Filter(v.rows, req.AWB, filter))
	errorsOnly := SortByDifferencePercent(ErrorsOnly(v.rows))

	return &dto.DashboardDTO{
		KPIs:     kpis(v.summary),
		Filters:  dto.DashboardFilter{AWB: req.AWB, Status: string(filter)},
		Table:    table(filtered, v.columns),
		Errors:   table(errorsOnly, v.columns),
		Snapshot: uc.snapshotInfo(v.snap),
		Message:  v.snap.Message,
	}, nil
}

// GetSummary solo los KPIs.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) *dto.SummaryDTO {
	return uc.summary(uc.source.GetOrRefresh(ctx))
}

// GetRecords tabla principal filtrada y proyectada.
func (uc *DashboardUseCase) GetRecords(ctx context.Context, req dto.DashboardRequest) (*dto.TableDTO, error) {
	filter, err := ParseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}
	v := uc.view(uc.source.GetOrRefresh(ctx))
	t := table(SortByDifferencePercent(Filter(v.rows, req.AWB, filter)), v.columns)
	return &t, nil
}

// GetErrors tabla de filas ERROR, independiente de los filtros.
func (uc *DashboardUseCase) GetErrors(ctx context.Context) *dto.TableDTO {
	v := uc.view(uc.source.GetOrRefresh(ctx))
	t := table(SortByDifferencePercent(ErrorsOnly(v.rows)), v.columns)
	return &t
}

// Refresh fuerza la recarga del CSV y devuelve los KPIs resultantes.
func (uc *DashboardUseCase) Refresh(ctx context.Context) *dto.SummaryDTO {
	return uc.summary(uc.source.Refresh(ctx))
}

// History últimos KPIs registrados. domain.ErrHistoryDisabled si no hay base de datos.
func (uc *DashboardUseCase) History(ctx context.Context, req dto.HistoryRequest) ([]dto.SnapshotKPIDTO, error) {
	if uc.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := uc.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: historial: %w", err)
	}

	out := make([]dto.SnapshotKPIDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SnapshotKPIDTO{
			SnapshotID: it.SnapshotID.String(),
			LoadedAt:   it.LoadedAt,
			KPIDTO: dto.KPIDTO{
				TotalAWB: it.Total,
				OK:       it.OK,
				Warnings: it.Warning,
				Errors:   it.Error,
				NoData:   it.NoData,
			},
		})
	}
	return out, nil
}

func (uc *DashboardUseCase) summary(snap entity.Snapshot) *dto.SummaryDTO {
	v := uc.view(snap)
	return &dto.SummaryDTO{
		KPIs:     kpis(v.summary),
		Snapshot: uc.snapshotInfo(snap),
		Message:  snap.Message,
	}
}

func (uc *DashboardUseCase) snapshotInfo(snap entity.Snapshot) dto.SnapshotInfoDTO {
	if snap.Failed() {
		return dto.SnapshotInfoDTO{}
	}
	loaded := snap.LoadedAt
	next := loaded.Add(uc.ttl)
	return dto.SnapshotInfoDTO{
		ID:            snap.ID.String(),
		LoadedAt:      &loaded,
		NextRefreshAt: &next,
	}
}

func kpis(s Summary) dto.KPIDTO {
	return dto.KPIDTO{
		TotalAWB: s.Total,
		OK:       s.OK,
		Warnings: s.Warning,
		Errors:   s.Error,
		NoData:   s.NoData,
	}
}

func table(rs entity.RowSet, columns []entity.Column) dto.TableDTO {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = string(c)
	}
	rows := make([]map[string]any, 0, rs.Len())
	for _, r := range rs.Records {
		row := make(map[string]any, len(columns))
		for _, c := range columns {
			row[string(c)] = r.Value(c)
		}
		rows = append(rows, row)
	}
	return dto.TableDTO{Columns: names, Rows: rows, Count: len(rows)}
}
