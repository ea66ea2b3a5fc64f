package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"rockfall-backend/internal/models"
)

// PredictionRepository is the persistence collaborator for the risk
// pipeline. All writes are single-row inserts; the pipeline never updates
// or deletes, and no cross-step transaction is assumed.
type PredictionRepository interface {
	FindOrCreateLocation(name, description string) (*models.MonitoredLocation, error)
	SaveSensorReading(reading *models.SensorReading) error
	SavePrediction(prediction *models.Prediction) error
	SaveAlert(alert *models.Alert) error
	RecentPredictions(limit int, locationID *int64) ([]*models.Prediction, error)
	AlertsForPrediction(predictionID int64) ([]*models.Alert, error)
	RecentAlerts(limit int) ([]*models.Alert, error)
	GetLocationByID(id int64) (*models.MonitoredLocation, error)
}

type predictionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPredictionRepository(db *sqlx.DB, logger *zap.Logger) PredictionRepository {
	return &predictionRepository{db: db, logger: logger}
}

// FindOrCreateLocation looks a location up by name and lazily creates it
// on first use. Name is the lookup key; repeated calls return the same row.
func (r *predictionRepository) FindOrCreateLocation(name, description string) (*models.MonitoredLocation, error) {
	var location models.MonitoredLocation
	query := `SELECT id, name, description, created_at FROM monitored_locations WHERE name = $1`
	err := r.db.Get(&location, query, name)
	if err == nil {
		return &location, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	r.logger.Info("Creating monitored location", zap.String("name", name))
	insert := `INSERT INTO monitored_locations (name, description) VALUES ($1, $2) RETURNING id, name, description, created_at`
	if err := r.db.QueryRowx(insert, name, description).StructScan(&location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *predictionRepository) GetLocationByID(id int64) (*models.MonitoredLocation, error) {
	var location models.MonitoredLocation
	query := `SELECT id, name, description, created_at FROM monitored_locations WHERE id = $1`
	if err := r.db.Get(&location, query, id); err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *predictionRepository) SaveSensorReading(reading *models.SensorReading) error {
	query := `INSERT INTO sensor_readings (
	            location_id, timestamp, rainfall, depth_to_groundwater, pore_water_pressure,
	            surface_runoff, unit_weight, cohesion, internal_friction_angle, slope_angle,
	            slope_height, pore_water_pressure_ratio, bench_height, bench_width, inter_ramp_angle)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`
	return r.db.QueryRow(query,
		reading.LocationID, reading.Timestamp, reading.Rainfall, reading.DepthToGroundwater,
		reading.PoreWaterPressure, reading.SurfaceRunoff, reading.UnitWeight, reading.Cohesion,
		reading.InternalFrictionAngle, reading.SlopeAngle, reading.SlopeHeight,
		reading.PoreWaterPressureRatio, reading.BenchHeight, reading.BenchWidth,
		reading.InterRampAngle).Scan(&reading.ID)
}

func (r *predictionRepository) SavePrediction(prediction *models.Prediction) error {
	query := `INSERT INTO predictions (risk_score, risk_level, contributing_factors, location_id, source_reading_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, prediction_timestamp`
	return r.db.QueryRow(query,
		prediction.RiskScore, prediction.RiskLevel, prediction.ContributingFactors,
		prediction.LocationID, prediction.SourceReadingID).Scan(&prediction.ID, &prediction.PredictionTimestamp)
}

func (r *predictionRepository) SaveAlert(alert *models.Alert) error {
	query := `INSERT INTO alerts (message, prediction_id) VALUES ($1, $2) RETURNING id, created_at`
	return r.db.QueryRow(query, alert.Message, alert.PredictionID).Scan(&alert.ID, &alert.CreatedAt)
}

// RecentPredictions returns the newest predictions, optionally filtered by
// location.
func (r *predictionRepository) RecentPredictions(limit int, locationID *int64) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	var err error
	if locationID != nil {
		query := `SELECT id, risk_score, risk_level, contributing_factors, location_id, source_reading_id, prediction_timestamp
		          FROM predictions WHERE location_id = $1 ORDER BY prediction_timestamp DESC LIMIT $2`
		err = r.db.Select(&predictions, query, *locationID, limit)
	} else {
		query := `SELECT id, risk_score, risk_level, contributing_factors, location_id, source_reading_id, prediction_timestamp
		          FROM predictions ORDER BY prediction_timestamp DESC LIMIT $1`
		err = r.db.Select(&predictions, query, limit)
	}
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) AlertsForPrediction(predictionID int64) ([]*models.Alert, error) {
	var alerts []*models.Alert
	query := `SELECT id, message, prediction_id, created_at FROM alerts WHERE prediction_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&alerts, query, predictionID); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *predictionRepository) RecentAlerts(limit int) ([]*models.Alert, error) {
	var alerts []*models.Alert
	query := `SELECT id, message, prediction_id, created_at FROM alerts ORDER BY created_at DESC LIMIT $1`
	if err := r.db.Select(&alerts, query, limit); err != nil {
		return nil, err
	}
	return alerts, nil
}
