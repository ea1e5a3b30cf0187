package atms

import (
	"net/http"

	"atmlocator/logger"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires the ATM routes behind request logging and CORS.
func NewRouter(h *Handler, log *logger.Logger, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(log))
	h.RegisterRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", writeKeyHeader},
	})

	return c.Handler(router)
}
