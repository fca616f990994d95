package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/awb-weight-dashboard/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo historial de KPIs por snapshot en la tabla awb_snapshot_kpis.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS awb_snapshot_kpis (
	    snapshot_id   UUID          PRIMARY KEY,
	    loaded_at     TIMESTAMPTZ   NOT NULL,
	    total         INTEGER       NOT NULL,
	    ok            INTEGER       NOT NULL,
	    warning       INTEGER       NOT NULL,
	    error         INTEGER       NOT NULL,
	    no_data       INTEGER       NOT NULL,
	    error_rate    NUMERIC(7,2)  NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS awb_snapshot_kpis_loaded_at_idx ON awb_snapshot_kpis (loaded_at DESC);`

	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("snapshots.EnsureSchema: %w", err)
	}
	return nil
}

// Save inserta los KPIs; un snapshot_id repetido se ignora.
// error_rate = error / total * 100 (2 decimales), 0 si no hay filas.
func (r *SnapshotRepo) Save(ctx context.Context, kpi repository.SnapshotKPI) error {
	const query = `
	INSERT INTO awb_snapshot_kpis
	    (snapshot_id, loaded_at, total, ok, warning, error, no_data, error_rate)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (snapshot_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		kpi.SnapshotID, kpi.LoadedAt,
		kpi.Total, kpi.OK, kpi.Warning, kpi.Error, kpi.NoData,
		ErrorRate(kpi),
	)
	if err != nil {
		return fmt.Errorf("snapshots.Save: %w", err)
	}
	return nil
}

// ListRecent devuelve hasta limit registros, del más reciente al más antiguo.
func (r *SnapshotRepo) ListRecent(ctx context.Context, limit int) ([]repository.SnapshotKPI, error) {
	const query = `
	SELECT snapshot_id, loaded_at, total, ok, warning, error, no_data
	FROM awb_snapshot_kpis
	ORDER BY loaded_at DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("snapshots.ListRecent: %w", err)
	}
	defer rows.Close()

	var out []repository.SnapshotKPI
	for rows.Next() {
		var k repository.SnapshotKPI
		if err := rows.Scan(&k.SnapshotID, &k.LoadedAt, &k.Total, &k.OK, &k.Warning, &k.Error, &k.NoData); err != nil {
			return nil, fmt.Errorf("snapshots.ListRecent scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshots.ListRecent rows: %w", err)
	}
	return out, nil
}

// ErrorRate porcentaje de guías en ERROR, redondeado a 2 decimales.
func ErrorRate(kpi repository.SnapshotKPI) decimal.Decimal {
	if kpi.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(kpi.Error)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(kpi.Total))).
		Round(2)
}
