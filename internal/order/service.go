package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems     = errors.New("order must contain at least one item")
	ErrInvalidItem = errors.New("invalid order item")
)

type Service interface {
	CreateOrder(ctx context.Context, items []OrderItem) (*Order, error)
	ListToday(ctx context.Context) ([]Order, error)
	SummarizeToday(ctx context.Context) (*DaySummary, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// CreateOrder validates the line items, computes each subtotal as
// unit_price * quantity - discount (discount is a total amount off for
// the line, never per unit), and persists the order atomically.
func (s *service) CreateOrder(ctx context.Context, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, ErrNoItems
	}

	total := decimal.Zero

	for i := range items {
		item := &items[i]

		if strings.TrimSpace(item.ProductName) == "" {
			return nil, fmt.Errorf("%w: product name must not be empty", ErrInvalidItem)
		}

		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for product %q must be greater than zero", ErrInvalidItem, item.ProductName)
		}

		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price for product %q must not be negative", ErrInvalidItem, item.ProductName)
		}

		if item.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: discount for product %q must not be negative", ErrInvalidItem, item.ProductName)
		}

		gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if item.Discount.GreaterThan(gross) {
			return nil, fmt.Errorf("%w: discount for product %q exceeds the line amount", ErrInvalidItem, item.ProductName)
		}

		item.Subtotal = gross.Sub(item.Discount)
		total = total.Add(item.Subtotal)
	}

	ord := &Order{
		CreatedAt: s.now().UTC(),
		Total:     total,
		Items:     items,
	}

	_, err := s.repo.CreateOrder(ctx, ord)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Stringer("order_id", ord.ID).Int("items", len(ord.Items)).Str("total", ord.Total.String()).Msg("service: order created")

	return ord, nil
}

func (s *service) ListToday(ctx context.Context) ([]Order, error) {
	from, to := dayRange(s.now())

	orders, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch today's orders in repository")
		return nil, fmt.Errorf("service: failed to fetch today's orders: %w", err)
	}

	return orders, nil
}

func (s *service) SummarizeToday(ctx context.Context) (*DaySummary, error) {
	from, to := dayRange(s.now())

	summary, err := s.repo.SummarizeByDateRange(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to summarize today's orders in repository")
		return nil, fmt.Errorf("service: failed to summarize today's orders: %w", err)
	}

	return summary, nil
}

// dayRange is the half-open interval covering the calendar day of now
// in the server's time zone.
func dayRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
