package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dashboard"
	"github.com/jhoicas/awb-weight-dashboard/pkg/logger"
)

// RoleOperator rol requerido para forzar la recarga del CSV.
const RoleOperator = "operator"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *dashboard.DashboardUseCase
	ReportUC    *dashboard.ReportUseCase
	Logger      *logger.Logger
	JWTSecret   string // vacío = /refresh sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger))

	h := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)

	dash := api.Group("/dashboard")
	dash.Get("/", h.GetDashboard)
	dash.Get("/summary", h.GetSummary)
	dash.Get("/records", h.GetRecords)
	dash.Get("/errors", h.GetErrors)
	dash.Get("/history", h.GetHistory)
	dash.Get("/report.pdf", h.ExportPDF)

	if deps.JWTSecret != "" {
		dash.Post("/refresh", AuthMiddleware(deps.JWTSecret), RequireRole(RoleOperator), h.Refresh)
	} else {
		dash.Post("/refresh", h.Refresh)
	}
}
