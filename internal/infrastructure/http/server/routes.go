package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/freshdeli/console/internal/infrastructure/http/middleware"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	monitoring.RegisterMetricsEndpoint(mux)
	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/storefront/catalog", methodOnly(http.MethodGet, s.storefrontHandler.HandleGetCatalog))
	mux.HandleFunc("/storefront/orders", methodOnly(http.MethodPost, s.storefrontHandler.HandlePlaceOrder))
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(s.cfg.Uploads.Dir))))

	mux.HandleFunc("/admin/login", methodOnly(http.MethodPost, s.authHandler.HandleLogin))
	mux.HandleFunc("/admin/logout", methodOnly(http.MethodPost, s.authHandler.HandleLogout))

	// Everything else under /admin requires a live operator session.
	session := middleware.NewSessionMiddleware(s.cache, s.sessionTTL, s.logger)

	admin := http.NewServeMux()
	admin.HandleFunc("/admin/catalog", methodOnly(http.MethodGet, s.catalogHandler.HandleGetCatalog))
	admin.HandleFunc("/admin/catalog/move", methodOnly(http.MethodPost, s.catalogHandler.HandleBulkMove))
	admin.HandleFunc("/admin/catalog/order/open", methodOnly(http.MethodPost, s.reorderHandler.HandleOpen))
	admin.HandleFunc("/admin/catalog/order/shift", methodOnly(http.MethodPost, s.reorderHandler.HandleShift))
	admin.HandleFunc("/admin/catalog/order/undo", methodOnly(http.MethodPost, s.reorderHandler.HandleUndo))
	admin.HandleFunc("/admin/catalog/order/save", methodOnly(http.MethodPost, s.reorderHandler.HandleSave))
	admin.HandleFunc("/admin/catalog/order/abandon", methodOnly(http.MethodPost, s.reorderHandler.HandleAbandon))
	admin.HandleFunc("/admin/items", methodOnly(http.MethodPost, s.catalogHandler.HandleCreateItem))
	admin.HandleFunc("/admin/items/", s.handleItemRoutes)
	admin.HandleFunc("/admin/delivery/settings", s.deliveryHandler.HandleSettings)
	admin.HandleFunc("/admin/orders", methodOnly(http.MethodGet, s.deliveryHandler.HandleListOrders))
	admin.HandleFunc("/admin/orders/", s.handleOrderRoutes)

	mux.Handle("/admin/", session(admin))

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleItemRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/items/")
	parts := strings.Split(path, "/")

	if len(parts) == 1 && parts[0] != "" {
		switch r.Method {
		case http.MethodPut:
			s.catalogHandler.HandleUpdateItem(w, r)
			return
		case http.MethodDelete:
			s.catalogHandler.HandleDeleteItem(w, r)
			return
		}
	} else if len(parts) == 2 && parts[1] == "image" {
		if r.Method == http.MethodPost {
			s.uploadHandler.HandleUploadImage(w, r)
			return
		}
	}

	http.NotFound(w, r)
}

func (s *Server) handleOrderRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
	parts := strings.Split(path, "/")

	if len(parts) == 2 && parts[1] == "status" {
		if r.Method == http.MethodPost {
			s.deliveryHandler.HandleOrderStatus(w, r)
			return
		}
	}

	http.NotFound(w, r)
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
