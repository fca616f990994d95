package dashboard

import (
	"context"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain/entity"
)

// SnapshotSource caché del loader. La implementa *csvsource.Cache.
type SnapshotSource interface {
	GetOrRefresh(ctx context.Context) entity.Snapshot
	Refresh(ctx context.Context) entity.Snapshot
}

// ReportGenerator genera el PDF del dashboard. La implementa *pdf.MarotoReportGenerator.
type ReportGenerator interface {
	GenerateDashboardPDF(ctx context.Context, report *dto.DashboardDTO) ([]byte, error)
}
