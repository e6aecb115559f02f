package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/d-olshansky/bakery-pos/internal/catalog"
	"github.com/d-olshansky/bakery-pos/internal/handler"
	"github.com/d-olshansky/bakery-pos/internal/order"
)

func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	productRepo := catalog.NewRepository(pool)
	productSvc := catalog.NewService(productRepo)
	ph := handler.NewProductHandler(productSvc)

	orderRepo := order.NewRepository(pool)
	orderSvc := order.NewService(orderRepo)
	oh := handler.NewOrderHandler(orderSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", ph.ListProducts)
		r.Post("/products", ph.CreateProduct)
		r.Post("/orders", oh.CreateOrder)
		r.Get("/orders/today", oh.ListToday)
		r.Get("/orders/today/summary", oh.TodaySummary)
	})

	return r
}

// requestLogger logs each request with method, path, status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
