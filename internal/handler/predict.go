package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rockfall-backend/internal/predictor"
)

// PredictService is the slice of the risk pipeline the HTTP layer needs.
type PredictService interface {
	ProcessBatch(ctx context.Context, rows [][]float64) (*predictor.BatchOutcome, error)
	ProcessSingle(ctx context.Context, features []float64) (*predictor.RowResult, error)
}

// PredictHandler handles single and bulk risk assessment requests.
type PredictHandler struct {
	service PredictService
	logger  *zap.Logger
}

func NewPredictHandler(service PredictService, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{service: service, logger: logger}
}

// PredictRequest is the body of POST /api/predict.
type PredictRequest struct {
	Features []float64 `json:"features" binding:"required"`
}

// BulkPredictRequest is the body of POST /api/predict/bulk.
type BulkPredictRequest struct {
	Rows [][]float64 `json:"rows" binding:"required"`
}

// Predict handles POST /api/predict: one feature vector through the full
// pipeline, persisted records included in the response.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain a 'features' array"})
		return
	}

	result, err := h.service.ProcessSingle(c.Request.Context(), req.Features)
	if err != nil {
		if predictor.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ML inference failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction":     result.Prediction,
		"features":       result.Features,
		"databaseRecord": result.DatabaseRecord,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// BulkPredict handles POST /api/predict/bulk: up to 100 feature vectors,
// processed in order. Row failures are reported per row; the response is
// 200 as long as the batch itself was well formed.
func (h *PredictHandler) BulkPredict(c *gin.Context) {
	var req BulkPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain a 'rows' array"})
		return
	}

	outcome, err := h.service.ProcessBatch(c.Request.Context(), req.Rows)
	if err != nil {
		if predictor.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Bulk prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"batch_id":  uuid.New().String(),
		"summary":   outcome.Summary,
		"results":   outcome.Results,
		"errors":    outcome.Errors,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
