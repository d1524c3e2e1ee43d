package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	stockapp "github.com/storekeep/backend/internal/application/stock"
	"github.com/storekeep/backend/internal/interfaces/http/middleware"
)

// StockHandler handles item and sale API endpoints
type StockHandler struct {
	BaseHandler
	stockService *stockapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *stockapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// RegisterRoutes registers stock routes on the given router group
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/items", h.CreateItem)
		stock.GET("/items", h.ListItems)
		stock.GET("/items/low-stock", h.ListLowStock)
		stock.PUT("/items/:name/restock", h.Restock)
		stock.POST("/sales", h.Sell)
		stock.GET("/sales", h.ListSales)
	}
}

// CreateItem handles POST /stock/items
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req stockapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.stockService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Restock handles PUT /stock/items/:name/restock
func (h *StockHandler) Restock(c *gin.Context) {
	name := c.Param("name")

	var req stockapp.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.stockService.Restock(c.Request.Context(), name, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// ListItems handles GET /stock/items
func (h *StockHandler) ListItems(c *gin.Context) {
	items, err := h.stockService.ListItems(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// ListLowStock handles GET /stock/items/low-stock
func (h *StockHandler) ListLowStock(c *gin.Context) {
	items, err := h.stockService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// Sell handles POST /stock/sales
func (h *StockHandler) Sell(c *gin.Context) {
	var req stockapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	item, err := h.stockService.Sell(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	// Responds with the updated item so clients see the new stock level
	h.Success(c, item)
}

// ListSales handles GET /stock/sales
func (h *StockHandler) ListSales(c *gin.Context) {
	sales, err := h.stockService.ListSales(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sales)
}

// bindError renders binding failures: field-level details for validator
// errors, a generic bad request for malformed JSON
func (h *StockHandler) bindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.ValidationError(c, middleware.ValidationDetails(validationErrors))
		return
	}
	h.BadRequest(c, err.Error())
}
