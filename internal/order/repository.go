package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateOrder(ctx context.Context, order *Order) (uuid.UUID, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Order, error)
	SummarizeByDateRange(ctx context.Context, from, to time.Time) (*DaySummary, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// CreateOrder writes the order row and all of its item rows in one
// transaction. A failure on any row rolls back the whole order, so a
// reader can never observe an order without its items.
func (r *postgresRepository) CreateOrder(ctx context.Context, orderInput *Order) (orderID uuid.UUID, err error) {
	finalOrderID, genErr := uuid.NewV4()
	if genErr != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate order ID: %w", genErr)
	}
	orderInput.ID = finalOrderID

	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Stringer("order_id_attempted", finalOrderID).Msg("Panic recovered during CreateOrder, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id_attempted", finalOrderID).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Stringer("order_id_attempted", finalOrderID).Msg("Transaction for CreateOrder failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id_attempted", finalOrderID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				log.Error().Err(commitErr).Stringer("order_id", finalOrderID).Msg("Failed to commit transaction")
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	if orderInput.CreatedAt.IsZero() {
		orderInput.CreatedAt = time.Now().UTC()
	}

	queryOrder := `
		INSERT INTO orders (id, created_at, total)
		VALUES ($1, $2, $3)
	`
	_, err = tx.Exec(ctx, queryOrder, finalOrderID, orderInput.CreatedAt, orderInput.Total)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	for i := range orderInput.Items {
		item := &orderInput.Items[i]

		itemID, genErr := uuid.NewV4()
		if genErr != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to generate order item ID: %w", genErr)
		}
		item.ID = itemID
		item.OrderID = finalOrderID

		queryItem := `
			INSERT INTO order_items (id, order_id, product_name, quantity, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err = tx.Exec(ctx, queryItem,
			item.ID,
			item.OrderID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			item.Subtotal,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("repository: failed to insert order item for order %s: %w", finalOrderID, err)
		}
	}

	return finalOrderID, nil
}

// ListByDateRange returns orders created in [from, to), oldest first,
// each with its items attached.
func (r *postgresRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	ordersQuery := `
		SELECT id, created_at, total
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`

	orderRows, err := r.db.Query(ctx, ordersQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer orderRows.Close()

	ordersMap := make(map[uuid.UUID]*Order)
	var orderIDs []uuid.UUID

	for orderRows.Next() {
		var ord Order
		err := orderRows.Scan(&ord.ID, &ord.CreatedAt, &ord.Total)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		ord.Items = make([]OrderItem, 0)
		ordersMap[ord.ID] = &ord
		orderIDs = append(orderIDs, ord.ID)
	}

	if err = orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	itemsQuery := `
		SELECT id, order_id, product_name, quantity, unit_price, discount, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		err := itemRows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Discount,
			&item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}

		if ord, ok := ordersMap[item.OrderID]; ok {
			ord.Items = append(ord.Items, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	resultOrders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		if ord, ok := ordersMap[id]; ok {
			resultOrders = append(resultOrders, *ord)
		}
	}

	return resultOrders, nil
}

// SummarizeByDateRange aggregates orders created in [from, to): order
// count and revenue from the orders table, per-product quantity and
// amount from a GROUP BY over their items.
func (r *postgresRepository) SummarizeByDateRange(ctx context.Context, from, to time.Time) (*DaySummary, error) {
	summary := &DaySummary{
		TotalAmount:    decimal.Zero,
		ProductSummary: make([]ProductSales, 0),
	}

	totalsQuery := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`
	err := r.db.QueryRow(ctx, totalsQuery, from, to).Scan(&summary.OrderCount, &summary.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order totals: %w", err)
	}

	productsQuery := `
		SELECT oi.product_name, SUM(oi.quantity), SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY oi.product_name
		ORDER BY oi.product_name ASC
	`
	rows, err := r.db.Query(ctx, productsQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query product summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sales ProductSales
		err := rows.Scan(&sales.ProductName, &sales.Quantity, &sales.Amount)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product summary row: %w", err)
		}
		summary.TotalQuantity += sales.Quantity
		summary.ProductSummary = append(summary.ProductSummary, sales)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating product summary: %w", err)
	}

	return summary, nil
}
