package predictor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rockfall-backend/internal/engine"
	"rockfall-backend/internal/models"
	"rockfall-backend/internal/repository"
)

// AlertNotifier pushes a raised alert to an external channel. Delivery is
// best effort: a failed notification never fails the row.
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, message string) error
}

// Processor drives the risk pipeline: validate, score each vector through
// the engine, parse and classify the output, persist the derived records,
// and raise alerts for High/Critical rows. Rows are processed strictly in
// submission order and failures are isolated per row.
type Processor struct {
	engine   engine.Engine
	repo     repository.PredictionRepository
	notifier AlertNotifier
	logger   *zap.Logger
}

// NewProcessor creates a new risk pipeline processor. notifier may be nil.
func NewProcessor(eng engine.Engine, repo repository.PredictionRepository, notifier AlertNotifier, logger *zap.Logger) *Processor {
	return &Processor{
		engine:   eng,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// ProcessBatch runs the pipeline over 1-100 feature vectors. The returned
// error is non-nil only for request-level failures (validation, resolving
// the shared location); per-row failures land in the outcome's error list
// and never abort the remaining rows.
func (p *Processor) ProcessBatch(ctx context.Context, rows [][]float64) (*BatchOutcome, error) {
	if err := ValidateBatch(rows); err != nil {
		return nil, err
	}

	// The default location is shared by every row in the batch, so it is
	// resolved once up front rather than per row.
	location, err := p.repo.FindOrCreateLocation(models.DefaultLocationName, models.DefaultLocationDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default location: %w", err)
	}

	outcome := &BatchOutcome{
		Results: []RowResult{},
		Errors:  []RowError{},
	}

	for i, features := range rows {
		row := i + 1
		result, err := p.processRow(ctx, row, features, location)
		if err != nil {
			p.logger.Warn("Batch row failed", zap.Int("row", row), zap.Error(err))
			outcome.Errors = append(outcome.Errors, RowError{Row: row, Error: err.Error()})
			continue
		}
		outcome.Results = append(outcome.Results, *result)
	}

	outcome.Summary = BatchSummary{
		TotalRows:  len(rows),
		Successful: len(outcome.Results),
		Failed:     len(outcome.Errors),
	}

	p.logger.Info("Batch processed",
		zap.Int("total_rows", outcome.Summary.TotalRows),
		zap.Int("successful", outcome.Summary.Successful),
		zap.Int("failed", outcome.Summary.Failed))

	return outcome, nil
}

// ProcessSingle runs the same pipeline for one vector.
func (p *Processor) ProcessSingle(ctx context.Context, features []float64) (*RowResult, error) {
	if err := ValidateVector(1, features); err != nil {
		return nil, err
	}

	location, err := p.repo.FindOrCreateLocation(models.DefaultLocationName, models.DefaultLocationDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default location: %w", err)
	}

	return p.processRow(ctx, 1, features, location)
}

// processRow scores one vector and persists the reading, the prediction
// and, for High/Critical classifications, an alert. The three inserts are
// sequential; an insert failure leaves earlier inserts committed and
// fails the row.
func (p *Processor) processRow(ctx context.Context, row int, features []float64, location *models.MonitoredLocation) (*RowResult, error) {
	raw, err := p.engine.Infer(ctx, features)
	if err != nil {
		return nil, err
	}

	parsed := ParseEngineOutput(raw)

	reading := models.NewSensorReading(location.ID, features, time.Now().UTC())
	if err := p.repo.SaveSensorReading(reading); err != nil {
		return nil, fmt.Errorf("database error: failed to save sensor reading: %w", err)
	}

	prediction := &models.Prediction{
		RiskScore:           parsed.RiskScore,
		RiskLevel:           parsed.RiskLevel,
		ContributingFactors: parsed.ContributingFactors,
		LocationID:          location.ID,
		SourceReadingID:     reading.ID,
	}
	if err := p.repo.SavePrediction(prediction); err != nil {
		return nil, fmt.Errorf("database error: failed to save prediction: %w", err)
	}

	if parsed.RiskLevel.Alertable() {
		alert := &models.Alert{
			Message:      fmt.Sprintf("Risk level %s detected: %.2f%% chance of rockfall.", parsed.RiskLevel, parsed.RiskScore),
			PredictionID: prediction.ID,
		}
		if err := p.repo.SaveAlert(alert); err != nil {
			return nil, fmt.Errorf("database error: failed to save alert: %w", err)
		}

		p.logger.Info("High risk detected, alert raised",
			zap.Int("row", row),
			zap.String("risk_level", string(parsed.RiskLevel)),
			zap.Float64("risk_score", parsed.RiskScore),
			zap.Int64("prediction_id", prediction.ID))

		if p.notifier != nil {
			if nerr := p.notifier.NotifyAlert(ctx, alert.Message); nerr != nil {
				p.logger.Warn("Failed to deliver alert notification", zap.Error(nerr), zap.Int64("alert_id", alert.ID))
			}
		}
	}

	return &RowResult{
		Row:        row,
		Features:   features,
		Prediction: raw,
		DatabaseRecord: DatabaseRecord{
			PredictionID:        prediction.ID,
			SensorReadingID:     reading.ID,
			LocationID:          location.ID,
			RiskLevel:           parsed.RiskLevel,
			RiskScore:           parsed.RiskScore,
			ContributingFactors: parsed.ContributingFactors,
		},
	}, nil
}
