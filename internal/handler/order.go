package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/d-olshansky/bakery-pos/internal/order"
)

type orderItemRequest struct {
	Product  string          `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Qty      int             `json:"qty"`
	Discount decimal.Decimal `json:"discount"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// OrderHandler handles HTTP requests for orders and the daily report.
type OrderHandler struct {
	svc order.Service
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrder records a new order with its line items.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]order.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.OrderItem{
			ProductName: it.Product,
			Quantity:    it.Qty,
			UnitPrice:   it.Price,
			Discount:    it.Discount,
		})
	}

	created, err := h.svc.CreateOrder(r.Context(), items)
	if err != nil {
		log.Info().Msgf("Failed to create order: %v", err)
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, createOrderResponse{ID: created.ID.String()})
}

// ListToday returns all orders created today, items included.
func (h *OrderHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListToday(r.Context())
	if err != nil {
		log.Info().Msgf("Failed to list today's orders: %v", err)
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

// TodaySummary returns aggregated figures over today's orders.
func (h *OrderHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.SummarizeToday(r.Context())
	if err != nil {
		log.Info().Msgf("Failed to summarize today's orders: %v", err)
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
