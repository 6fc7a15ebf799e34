package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/punto-venta/internal/application/analytics"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
)

// DashboardHandler maneja el resumen del tablero (protegido).
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Stats resumen de productos, ventas, ingresos y usuarios.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("stats del tablero")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
