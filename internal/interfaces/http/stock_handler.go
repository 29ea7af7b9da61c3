package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/katarymba/ais-api/internal/application/dto"
	"github.com/katarymba/ais-api/internal/application/inventory"
	"github.com/katarymba/ais-api/internal/application/usecase"
	"github.com/katarymba/ais-api/internal/domain"
)

// StockHandler maneja consultas de stock, operaciones manuales (recuento,
// salida, traslado), el historial de movimientos y el reporte XLSX.
type StockHandler struct {
	queryUC *usecase.StockQueryUseCase
	opsUC   *inventory.UseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(queryUC *usecase.StockQueryUseCase, opsUC *inventory.UseCase) *StockHandler {
	return &StockHandler{queryUC: queryUC, opsUC: opsUC}
}

// List godoc
// @Summary      Listar posiciones de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	var (
		out []*dto.StockItemResponse
		err error
	)
	if warehouseID != "" {
		out, err = h.queryUC.ListByWarehouse(warehouseID)
	} else {
		out, err = h.queryUC.ListAll()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Registrar recuento manual de inventario
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.CountStockRequest  true  "Cantidad observada"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stocks/count [post]
func (h *StockHandler) Count(c *fiber.Ctx) error {
	var in dto.CountStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.opsUC.RegisterCount(c.Context(), GetUsername(c), in); err != nil {
		return stockOpError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Issue godoc
// @Summary      Registrar salida de almacén
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.IssueStockRequest  true  "Salida"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stocks/issue [post]
func (h *StockHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.opsUC.Issue(c.Context(), GetUsername(c), in); err != nil {
		return stockOpError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer godoc
// @Summary      Trasladar stock entre almacenes
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.TransferStockRequest  true  "Traslado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stocks/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.opsUC.Transfer(c.Context(), GetUsername(c), in); err != nil {
		return stockOpError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Historial de movimientos de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stocks/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}
	out, err := h.queryUC.Movements(c.Query("warehouse_id"), c.Query("product_id"), from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar existencias a XLSX
// @Tags         stocks
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Success      200
// @Router       /api/stocks/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	buf, err := h.queryUC.ExportReport(c.Query("warehouse_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := "stock_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// stockOpError mapea errores de dominio de las operaciones de stock.
func stockOpError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o posición no encontrada"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la cantidad cambió durante la operación, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
