package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/Brownie44l1/iris-api/internal/config"
	"github.com/Brownie44l1/iris-api/internal/logger"
	"github.com/Brownie44l1/iris-api/internal/model"
	"github.com/Brownie44l1/iris-api/internal/router"
)

type Server struct {
	config      *config.Config
	modelServer *model.Server
	httpServer  *http.Server
}

// New loads the model artifacts and builds the http server. A load failure
// is returned as is so the process refuses to start.
func New(cfg *config.Config) (*Server, error) {
	logger.Infof("loading %s model from %s, scaler from %s", cfg.Model.Format, cfg.Model.ClassifierPath, cfg.Model.ScalerPath)

	modelServer, err := model.Load(cfg.Model.LoadOptions())
	if err != nil {
		return nil, err
	}
	logger.Infof("model loaded: %s, classes: %v", modelServer.Info().ModelType, modelServer.Classes())

	return NewWithModel(cfg, modelServer), nil
}

func NewWithModel(cfg *config.Config, modelServer *model.Server) *Server {
	return &Server{
		config:      cfg,
		modelServer: modelServer,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router.Init(cfg, modelServer),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve blocks until the server is stopped.
func (s *Server) Serve() error {
	logger.Infof("server starting on %s", s.httpServer.Addr)
	logger.Info("endpoints: GET / (health), POST /predict, GET /model-info")
	if s.config.Metrics.Enable {
		logger.Info("metrics: GET /metrics")
	}

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	} else {
		logger.Info("server closed")
	}

	if err := s.modelServer.Close(); err != nil {
		logger.Errorf("release model: %v", err)
	}
}
