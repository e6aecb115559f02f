package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/d-olshansky/bakery-pos/internal/catalog"
	"github.com/d-olshansky/bakery-pos/internal/order"
)

func init() {
	// Money on the wire is a plain JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// respondWithError sends a JSON error payload.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidItem),
		errors.Is(err, catalog.ErrInvalidProduct):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
