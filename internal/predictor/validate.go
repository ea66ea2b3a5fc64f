package predictor

import (
	"errors"
	"fmt"
	"math"

	"rockfall-backend/internal/models"
)

// MaxBatchRows is the upper bound on rows accepted in one bulk request.
const MaxBatchRows = 100

// BatchSizeError rejects a batch whose row count is outside [1, MaxBatchRows].
type BatchSizeError struct {
	Size int
}

func (e *BatchSizeError) Error() string {
	if e.Size == 0 {
		return "at least one row is required"
	}
	return fmt.Sprintf("maximum %d rows allowed per batch, got %d", MaxBatchRows, e.Size)
}

// ShapeError rejects a row that does not carry exactly the expected number
// of features. Row is 1-based, matching response row numbering.
type ShapeError struct {
	Row   int
	Count int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d must contain exactly %d numerical features, got %d", e.Row, models.FeatureCount, e.Count)
}

// ValueError rejects a non-finite feature value. Row and Feature are 1-based.
type ValueError struct {
	Row     int
	Feature int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("row %d, feature %d must be a valid number", e.Row, e.Feature)
}

// IsValidationError reports whether err is a batch/row validation failure,
// i.e. a client input problem rather than a pipeline fault.
func IsValidationError(err error) bool {
	var sizeErr *BatchSizeError
	var shapeErr *ShapeError
	var valueErr *ValueError
	return errors.As(err, &sizeErr) || errors.As(err, &shapeErr) || errors.As(err, &valueErr)
}

// ValidateVector checks a single feature vector: exactly 13 features, all
// finite. row is the 1-based position used in error messages.
func ValidateVector(row int, features []float64) error {
	if len(features) != models.FeatureCount {
		return &ShapeError{Row: row, Count: len(features)}
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValueError{Row: row, Feature: i + 1}
		}
	}
	return nil
}

// ValidateBatch checks the batch shape before any row is processed. It has
// no side effects: the engine and the store are never touched here.
func ValidateBatch(rows [][]float64) error {
	if len(rows) == 0 || len(rows) > MaxBatchRows {
		return &BatchSizeError{Size: len(rows)}
	}
	for i, features := range rows {
		if err := ValidateVector(i+1, features); err != nil {
			return err
		}
	}
	return nil
}
