package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/awb-weight-dashboard/internal/application/dashboard"
	"github.com/jhoicas/awb-weight-dashboard/internal/application/dto"
	"github.com/jhoicas/awb-weight-dashboard/internal/domain"
)

// DashboardHandler maneja los endpoints del dashboard de conciliación de pesos.
type DashboardHandler struct {
	uc     *dashboard.DashboardUseCase
	report *dashboard.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase, report *dashboard.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetDashboard godoc
// @Summary      KPIs, tabla filtrada y tabla de errores
// @Description  Un error al cargar el CSV no es un error HTTP: responde 200 con KPIs en cero y message.
// @Tags         dashboard
// @Produce      json
// @Param        awb     query  string  false  "Subcadena del AWB (sensible a mayúsculas)"
// @Param        status  query  string  false  "ALL | OK | WARNING | ERROR (default ALL)"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	req, err := parseFilters(c)
	if err != nil {
		return badParams(c)
	}
	out, err := h.uc.GetDashboard(c.UserContext(), req)
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(out)
}

// GetSummary godoc
// @Summary      KPIs del snapshot actual
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetSummary(c.UserContext()))
}

// GetRecords godoc
// @Summary      Tabla principal filtrada y proyectada
// @Tags         dashboard
// @Produce      json
// @Param        awb     query  string  false  "Subcadena del AWB"
// @Param        status  query  string  false  "ALL | OK | WARNING | ERROR"
// @Success      200  {object}  dto.TableDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/records [get]
func (h *DashboardHandler) GetRecords(c *fiber.Ctx) error {
	req, err := parseFilters(c)
	if err != nil {
		return badParams(c)
	}
	out, err := h.uc.GetRecords(c.UserContext(), req)
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(out)
}

// GetErrors godoc
// @Summary      Guías en ERROR (ignora los filtros)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.TableDTO
// @Router       /api/dashboard/errors [get]
func (h *DashboardHandler) GetErrors(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetErrors(c.UserContext()))
}

// GetHistory godoc
// @Summary      Historial de KPIs por recarga
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máx. registros (default 20, max 500)"
// @Success      200  {array}   dto.SnapshotKPIDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/history [get]
func (h *DashboardHandler) GetHistory(c *fiber.Ctx) error {
	var req dto.HistoryRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	items, err := h.uc.History(c.UserContext(), req)
	if errors.Is(err, domain.ErrHistoryDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "HISTORY_DISABLED", Message: err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(items)
}

// ExportPDF godoc
// @Summary      Exporta el dashboard a PDF con los mismos filtros
// @Tags         dashboard
// @Produce      application/pdf
// @Param        awb     query  string  false  "Subcadena del AWB"
// @Param        status  query  string  false  "ALL | OK | WARNING | ERROR"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) ExportPDF(c *fiber.Ctx) error {
	req, err := parseFilters(c)
	if err != nil {
		return badParams(c)
	}
	out, err := h.report.ExportPDF(c.UserContext(), req)
	if errors.Is(err, domain.ErrInvalidFilter) {
		return filterError(c, err)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="awb-weight-report.pdf"`)
	return c.Send(out)
}

// Refresh godoc
// @Summary      Fuerza la recarga del CSV (ignora el TTL de la caché)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	return c.JSON(h.uc.Refresh(c.UserContext()))
}

func parseFilters(c *fiber.Ctx) (dto.DashboardRequest, error) {
	var req dto.DashboardRequest
	err := c.QueryParser(&req)
	return req, err
}

func badParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}

func filterError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidFilter) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_FILTER", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
