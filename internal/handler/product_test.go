package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-olshansky/bakery-pos/internal/catalog"
)

type mockCatalogService struct {
	addProductFunc   func(ctx context.Context, product *catalog.Product) (*catalog.Product, error)
	listProductsFunc func(ctx context.Context) ([]catalog.Product, error)
}

func (m *mockCatalogService) AddProduct(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	return m.addProductFunc(ctx, product)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return m.listProductsFunc(ctx)
}

func newProductRouter(svc catalog.Service) *chi.Mux {
	h := NewProductHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/products", h.ListProducts)
	r.Post("/api/products", h.CreateProduct)
	return r
}

func TestProductHandler_CreateProduct(t *testing.T) {
	productID := uuid.Must(uuid.FromString("9b2f2c44-7d41-4a7a-9f14-3d2f9c2ab111"))

	tests := []struct {
		name           string
		body           string
		addProduct     func(ctx context.Context, product *catalog.Product) (*catalog.Product, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"name":"Croissant","price":3.50}`,
			addProduct: func(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
				product.ID = productID
				return product, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"9b2f2c44-7d41-4a7a-9f14-3d2f9c2ab111"}`,
		},
		{
			name: "empty_name",
			body: `{"name":"","price":3.50}`,
			addProduct: func(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
				return nil, catalog.ErrInvalidProduct
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid product"}`,
		},
		{
			name:           "invalid_json",
			body:           `{invalid json}`,
			addProduct:     func(ctx context.Context, product *catalog.Product) (*catalog.Product, error) { return nil, nil },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name: "storage_failure",
			body: `{"name":"Croissant","price":3.50}`,
			addProduct: func(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
				return nil, errors.New("service: failed to create product: connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"service: failed to create product: connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockCatalogService{addProductFunc: tt.addProduct}
			r := newProductRouter(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestProductHandler_CreateProduct_PassesFields(t *testing.T) {
	var got *catalog.Product
	mockSvc := &mockCatalogService{
		addProductFunc: func(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
			got = product
			return product, nil
		},
	}
	r := newProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(`{"name":"Croissant","price":3.50}`))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Croissant", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3.50")))
}

func TestProductHandler_ListProducts(t *testing.T) {
	mockSvc := &mockCatalogService{
		listProductsFunc: func(ctx context.Context) ([]catalog.Product, error) {
			return []catalog.Product{
				{
					ID:    uuid.Must(uuid.FromString("9b2f2c44-7d41-4a7a-9f14-3d2f9c2ab111")),
					Name:  "Croissant",
					Price: decimal.RequireFromString("3.50"),
				},
				{
					ID:    uuid.Must(uuid.FromString("1c9d8e5a-0b6f-4f3f-8d7a-2e1b3c4d5e6f")),
					Name:  "Bagel",
					Price: decimal.RequireFromString("2.00"),
				},
			}, nil
		},
	}
	r := newProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	expected := `[
		{"id": "9b2f2c44-7d41-4a7a-9f14-3d2f9c2ab111", "name": "Croissant", "price": 3.5},
		{"id": "1c9d8e5a-0b6f-4f3f-8d7a-2e1b3c4d5e6f", "name": "Bagel", "price": 2}
	]`
	assert.JSONEq(t, expected, w.Body.String())
}

func TestProductHandler_ListProducts_StorageFailure(t *testing.T) {
	mockSvc := &mockCatalogService{
		listProductsFunc: func(ctx context.Context) ([]catalog.Product, error) {
			return nil, errors.New("service: failed to list products: connection refused")
		},
	}
	r := newProductRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"service: failed to list products: connection refused"}`, w.Body.String())
}
