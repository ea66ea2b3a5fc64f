package predictor

import "rockfall-backend/internal/models"

// DatabaseRecord summarises the rows persisted for one processed vector.
type DatabaseRecord struct {
	PredictionID        int64                      `json:"predictionId"`
	SensorReadingID     int64                      `json:"sensorReadingId"`
	LocationID          int64                      `json:"locationId"`
	RiskLevel           models.RiskLevel           `json:"riskLevel"`
	RiskScore           float64                    `json:"riskScore"`
	ContributingFactors models.ContributingFactors `json:"contributingFactors"`
}

// RowResult is the per-row success record. Row is 1-based, matching the
// position of the vector in the submitted batch.
type RowResult struct {
	Row            int            `json:"row"`
	Features       []float64      `json:"features"`
	Prediction     string         `json:"prediction"`
	DatabaseRecord DatabaseRecord `json:"databaseRecord"`
}

// RowError records one failed row. The batch keeps going past it.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchSummary counts the outcome of a batch. Successful + Failed always
// equals TotalRows.
type BatchSummary struct {
	TotalRows  int `json:"totalRows"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchOutcome is the aggregate result of one batch run. Results and
// Errors are each ordered by ascending row number.
type BatchOutcome struct {
	Summary BatchSummary `json:"summary"`
	Results []RowResult  `json:"results"`
	Errors  []RowError   `json:"errors"`
}
