package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter wires the routes, CORS and access logging around handler.
func NewRouter(handler *SimulationHandler, allowedOrigins []string, logger *zap.SugaredLogger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/simulate", handler.HandleSimulate).Methods(http.MethodPost)
	r.HandleFunc("/health", handler.HandleHealth).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(handler.HandleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.HandleMethodNotAllowed)

	// 開発用に全オリジンを許可。本番では CORS_ALLOWED_ORIGINS で絞る
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return accessLog(logger, c.Handler(r))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func accessLog(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Debugw("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
