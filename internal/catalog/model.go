package catalog

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Orders never reference it by id: line
// items carry the product name and price they were sold at, so catalog
// edits do not rewrite history.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"-" db:"created_at"`
}
