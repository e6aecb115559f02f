package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/d-olshansky/bakery-pos/internal/catalog"
)

type createProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type createProductResponse struct {
	ID string `json:"id"`
}

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	svc catalog.Service
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc catalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts returns the full catalog in insertion order.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		log.Info().Msgf("Failed to list products: %v", err)
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

// CreateProduct adds a catalog entry and returns its new id.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &catalog.Product{
		Name:  req.Name,
		Price: req.Price,
	}

	created, err := h.svc.AddProduct(r.Context(), product)
	if err != nil {
		log.Info().Msgf("Failed to add product: %v", err)
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, createProductResponse{ID: created.ID.String()})
}
