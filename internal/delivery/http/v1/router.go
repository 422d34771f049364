package v1

import (
	"net/http"

	"catalog-backend/pkg/utils"
)

// RegisterRoutes mounts the API on mux.
func RegisterRoutes(mux *http.ServeMux, products *ProductHandler, users *UserHandler, auth *AuthHandler) {
	mux.HandleFunc("POST /api/v1/products", products.Create)
	mux.HandleFunc("GET /api/v1/products", products.Search)
	mux.HandleFunc("GET /api/v1/products/{id}", products.Get)
	mux.HandleFunc("PUT /api/v1/products/{id}", products.Update)
	mux.HandleFunc("DELETE /api/v1/products/{id}", products.Delete)

	mux.HandleFunc("POST /api/v1/users", users.Create)
	mux.HandleFunc("GET /api/v1/users", users.Search)

	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)
}
