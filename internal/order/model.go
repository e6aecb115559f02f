package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"orderId" db:"order_id"`
	ProductName string          `json:"product" db:"product_name"`
	Quantity    int             `json:"qty" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"price" db:"unit_price"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
}

type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Items     []OrderItem     `json:"items" db:"-"`
}

// ProductSales is one row of the per-product aggregation in a day
// summary: quantity and amount summed over every line item recorded for
// that product name.
type ProductSales struct {
	ProductName string          `json:"product"`
	Quantity    int64           `json:"qty"`
	Amount      decimal.Decimal `json:"amount"`
}

type DaySummary struct {
	OrderCount     int64           `json:"orderCount"`
	TotalQuantity  int64           `json:"totalQty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ProductSummary []ProductSales  `json:"productSummary"`
}
