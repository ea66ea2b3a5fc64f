package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockfall-backend/internal/models"
	"rockfall-backend/internal/repository"
)

// PredictionHandler serves the read side: past predictions and alerts.
type PredictionHandler struct {
	repo   repository.PredictionRepository
	logger *zap.Logger
}

func NewPredictionHandler(repo repository.PredictionRepository, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{repo: repo, logger: logger}
}

// predictionView is one prediction with its location and alerts attached.
type predictionView struct {
	*models.Prediction
	Location *models.MonitoredLocation `json:"location,omitempty"`
	Alerts   []*models.Alert           `json:"alerts"`
}

// GetPredictions handles GET /api/predictions
// Query parameters:
// - limit: max number of predictions to return (default 10)
// - location_id: filter by location (optional)
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	var locationID *int64
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
			return
		}
		locationID = &id
	}

	predictions, err := h.repo.RecentPredictions(limit, locationID)
	if err != nil {
		h.logger.Error("Failed to get predictions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
		return
	}

	locations := make(map[int64]*models.MonitoredLocation)
	views := make([]predictionView, 0, len(predictions))
	for _, p := range predictions {
		location, ok := locations[p.LocationID]
		if !ok {
			location, err = h.repo.GetLocationByID(p.LocationID)
			if err != nil {
				h.logger.Warn("Failed to load location for prediction",
					zap.Int64("prediction_id", p.ID),
					zap.Int64("location_id", p.LocationID),
					zap.Error(err))
				location = nil
			}
			locations[p.LocationID] = location
		}

		alerts, err := h.repo.AlertsForPrediction(p.ID)
		if err != nil {
			h.logger.Warn("Failed to load alerts for prediction", zap.Int64("prediction_id", p.ID), zap.Error(err))
			alerts = []*models.Alert{}
		}
		if alerts == nil {
			alerts = []*models.Alert{}
		}

		views = append(views, predictionView{Prediction: p, Location: location, Alerts: alerts})
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": views,
		"count":       len(views),
	})
}

// GetAlerts handles GET /api/alerts
// Query parameters:
// - limit: max number of alerts to return (default 10)
func (h *PredictionHandler) GetAlerts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	alerts, err := h.repo.RecentAlerts(limit)
	if err != nil {
		h.logger.Error("Failed to get alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
