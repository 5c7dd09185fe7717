package api

import (
	"net/http"

	"github.com/rs/cors"
)

// WithCORS allows browser clients from origins to call the API.
func WithCORS(next http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Traceparent", "Tracestate"},
	}).Handler(next)
}
