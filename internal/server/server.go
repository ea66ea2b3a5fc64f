package server

import (
	"net/http"

	"rockfall-backend/internal/handler"
	"rockfall-backend/internal/predictor"
	"rockfall-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router    *gin.Engine
	processor *predictor.Processor
	repo      repository.PredictionRepository
	logger    *zap.Logger
	log       *logrus.Logger
}

func NewServer(processor *predictor.Processor, repo repository.PredictionRepository, logger *zap.Logger, log *logrus.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:    router,
		processor: processor,
		repo:      repo,
		logger:    logger,
		log:       log,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	predictHandler := handler.NewPredictHandler(s.processor, s.logger)
	predictionHandler := handler.NewPredictionHandler(s.repo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api")
	{
		api.POST("/predict", predictHandler.Predict)
		api.POST("/predict/bulk", predictHandler.BulkPredict)
		api.GET("/predictions", predictionHandler.GetPredictions)
		api.GET("/alerts", predictionHandler.GetAlerts)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
