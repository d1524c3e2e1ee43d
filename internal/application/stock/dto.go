package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekeep/backend/internal/domain/stock"
)

// CreateItemRequest represents a request to create a new item
type CreateItemRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	Quantity        *int64          `json:"quantity" binding:"required,gte=0"`
	MinimumQuantity *int64          `json:"minimum_quantity" binding:"required,gte=0"`
}

// RestockRequest represents a request to add stock to an existing item
type RestockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest represents a request to sell an item
type CreateSaleRequest struct {
	ItemName     string `json:"item_name" binding:"required,min=1"`
	QuantitySold int64  `json:"quantity_sold" binding:"required,gt=0"`
}

// ItemResponse represents an item in API responses.
// LowStock is derived from the current quantity at response time.
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int64           `json:"quantity"`
	MinimumQuantity int64           `json:"minimum_quantity"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse represents a list of items with a count
type ItemListResponse struct {
	Count int            `json:"count"`
	Items []ItemResponse `json:"items"`
}

// SaleResponse represents a sale record in API responses
type SaleResponse struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	ItemName     string          `json:"item_name"`
	QuantitySold int64           `json:"quantity_sold"`
	PriceAtSale  decimal.Decimal `json:"price_at_sale"`
	SoldAt       time.Time       `json:"sold_at"`
}

// SaleListResponse represents a list of sales with a count
type SaleListResponse struct {
	Count int            `json:"count"`
	Sales []SaleResponse `json:"sales"`
}

// ToItemResponse converts a domain item to its response representation
func ToItemResponse(item *stock.Item) *ItemResponse {
	return &ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Price:           item.Price,
		Quantity:        item.Quantity,
		MinimumQuantity: item.MinimumQuantity,
		LowStock:        item.LowStock(),
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain items to response representations
func ToItemResponses(items []stock.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *ToItemResponse(&items[i]))
	}
	return responses
}

// ToSaleResponse converts a domain sale to its response representation
func ToSaleResponse(sale *stock.Sale) *SaleResponse {
	return &SaleResponse{
		SaleID:       sale.ID,
		ItemName:     sale.ItemName,
		QuantitySold: sale.QuantitySold,
		PriceAtSale:  sale.PriceAtSale,
		SoldAt:       sale.SoldAt,
	}
}

// ToSaleResponses converts a slice of domain sales to response representations
func ToSaleResponses(sales []stock.Sale) []SaleResponse {
	responses := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *ToSaleResponse(&sales[i]))
	}
	return responses
}
