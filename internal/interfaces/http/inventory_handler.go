package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// InventoryHandler maneja stock, movimientos, traslados y conteos (protegido).
type InventoryHandler struct {
	uc       *inventory.RegisterMovementUseCase
	overview *inventory.StockOverviewUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, overview *inventory.StockOverviewUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, overview: overview}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  qty_change positivo suma y negativo resta; nunca deja la cantidad por debajo de cero.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, warehouse_id, qty_change, reason (in, out, transfer, adjust), note"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateIDs(); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), GetOrgID(c), GetUserID(c), inventory.Operation{
		Kind:     dto.OperationMovement,
		Movement: in,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockTransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity, note"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.StockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateIDs(); err != nil {
		return respondError(c, err)
	}
	_, err := h.uc.RegisterMovementFromRequest(c.Context(), GetOrgID(c), GetUserID(c), inventory.Operation{
		Kind:     dto.OperationTransfer,
		Transfer: in,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// SetQuantity godoc
// @Summary      Corregir cantidad por conteo físico
// @Description  Fija la cantidad absoluta y registra un ajuste por la diferencia. Sin diferencia responde 204.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetQuantityRequest  true  "product_id, warehouse_id, new_quantity"
// @Success      200   {object}  dto.StockMovementResponse
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/quantity [put]
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateIDs(); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), GetOrgID(c), GetUserID(c), inventory.Operation{
		Kind: dto.OperationSet,
		Set:  in,
	})
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Listar stock por producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "Busca en código y nombre"
// @Param        warehouse_id  query  string  false  "Solo muestra el detalle de esta bodega"
// @Param        type          query  string  false  "Final, SemiFinished o Raw"
// @Param        low_stock     query  bool    false  "Solo productos con stock bajo"
// @Param        page          query  int     false  "Página (1 por defecto)"
// @Param        limit         query  int     false  "Elementos por página (10 por defecto)"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	q := inventory.StockListQuery{
		Query:       c.Query("q"),
		WarehouseID: c.Query("warehouse_id"),
		ProductType: c.Query("type"),
		LowStock:    c.QueryBool("low_stock", false),
		PageRequest: pageFromQuery(c),
	}
	out, err := h.overview.List(c.Context(), GetOrgID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductStockDTO
// @Router       /api/stock/low [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.overview.LowStockProducts(c.Context(), GetOrgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// ProductStock godoc
// @Summary      Stock de un producto por bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id} [get]
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.overview.ProductStock(c.Context(), GetOrgID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        page          query  int     false  "Página (1 por defecto)"
// @Param        limit         query  int     false  "Elementos por página (20 por defecto)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f := inventory.MovementFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		PageRequest: pageFromQuery(c),
	}
	if err := dto.ValidateFilterIDs("product_id", f.ProductID, "warehouse_id", f.WarehouseID); err != nil {
		return respondError(c, err)
	}
	out, err := h.overview.ListMovements(c.Context(), GetOrgID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Hoja de conteo en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/stock/report.pdf [get]
func (h *InventoryHandler) StockReport(c *fiber.Ctx) error {
	pdf, err := h.overview.StockReportPDF(c.Context(), GetOrgID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="conteo-inventario.pdf"`)
	return c.Send(pdf)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
}
