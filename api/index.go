package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"abeg-fix/config"
	"abeg-fix/models"
	"abeg-fix/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	handler http.Handler
	initErr error
	once    sync.Once
)

// initApp builds the application once per serverless instance. The sweeper
// is not started here; schedule it from a long-running deployment instead.
func initApp() {
	once.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			initErr = err
			return
		}
		logger, err := config.NewLogger(cfg)
		if err != nil {
			initErr = err
			return
		}
		gin.SetMode(gin.ReleaseMode)

		app, err := server.New(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Failed to initialise application", zap.Error(err))
			initErr = err
			return
		}
		handler = app.Router
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: "Service unavailable"})
		return
	}
	handler.ServeHTTP(w, r)
}
