package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/sync"
)

// SyncHandler dispara la pasada de sincronización con Север-Рыба.
type SyncHandler struct {
	orchestrator *sync.Orchestrator
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(orchestrator *sync.Orchestrator) *SyncHandler {
	return &SyncHandler{orchestrator: orchestrator}
}

// Run godoc
// @Summary      Ejecutar pasada de sincronización con Север-Рыба
// @Description  Fusiona el catálogo local con el externo y aplica los ajustes
// @Description  de stock resultantes. Si el externo no responde la pasada se
// @Description  degrada a datos locales y vuelve con mode "degraded" (200).
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncRequest  false  "warehouse_id opcional"
// @Success      200   {object}  dto.SyncResult
// @Router       /api/sync/sever-ryba [post]
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	var in dto.SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.orchestrator.Run(c.Context(), in.WarehouseID, GetUsername(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
