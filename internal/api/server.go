package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured. Mutating
// analysis routes require the admin key when one is configured.
func NewServer(port string, handler *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/properties/search", handler.SearchProperties)
	mux.HandleFunc("POST /api/v1/properties/refresh", handler.ScheduleRefresh)
	mux.HandleFunc("POST /api/v1/analyze", handler.AnalyzeProperty)
	mux.HandleFunc("POST /api/v1/portfolio", handler.AggregatePortfolio)
	mux.HandleFunc("POST /api/v1/share", handler.CreateShareCode)
	mux.HandleFunc("GET /api/v1/share/{code}", handler.ResolveShareCode)
	mux.HandleFunc("GET /api/v1/analyses", handler.ListAnalyses)
	mux.HandleFunc("GET /api/v1/analyses/{id}", handler.GetAnalysis)

	saveHandler := http.HandlerFunc(handler.SaveAnalysis)
	deleteHandler := http.HandlerFunc(handler.DeleteAnalysis)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/analyses", requireAuth(adminAPIKey, saveHandler))
		mux.Handle("DELETE /api/v1/analyses/{id}", requireAuth(adminAPIKey, deleteHandler))
	} else {
		mux.Handle("POST /api/v1/analyses", saveHandler)
		mux.Handle("DELETE /api/v1/analyses/{id}", deleteHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
