package dashboard

import (
	"context"
	"fmt"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
)

// ReportUseCase exporta el dashboard (con los mismos filtros) a PDF.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// ExportPDF devuelve los bytes del PDF.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, req dto.DashboardRequest) ([]byte, error) {
	report, err := uc.dashboard.GetDashboard(ctx, req)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateDashboardPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("report: generar PDF: %w", err)
	}
	return pdf, nil
}
