package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RiskLevel is the discrete severity bucket derived from a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Alertable reports whether predictions at this level raise an alert.
func (l RiskLevel) Alertable() bool {
	return l == RiskHigh || l == RiskCritical
}

// ContributingFactor is one named input dimension with its reported share
// of the risk score, as extracted from the engine's output text.
type ContributingFactor struct {
	Factor       string  `json:"factor"`
	Unit         string  `json:"unit"`
	Contribution float64 `json:"contribution"`
}

// ContributingFactors is stored as a JSONB column on predictions. Order is
// preserved as reported by the engine; the first entry is the largest
// reported contributor.
type ContributingFactors []ContributingFactor

func (f ContributingFactors) Value() (driver.Value, error) {
	if f == nil {
		f = ContributingFactors{}
	}
	return json.Marshal(f)
}

func (f *ContributingFactors) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ContributingFactors", src)
	}
}

// Prediction represents a row in the 'predictions' table.
type Prediction struct {
	ID                  int64               `db:"id" json:"id"`
	RiskScore           float64             `db:"risk_score" json:"risk_score"`
	RiskLevel           RiskLevel           `db:"risk_level" json:"risk_level"`
	ContributingFactors ContributingFactors `db:"contributing_factors" json:"contributing_factors"`
	LocationID          int64               `db:"location_id" json:"location_id"`
	SourceReadingID     int64               `db:"source_reading_id" json:"source_reading_id"`
	PredictionTimestamp time.Time           `db:"prediction_timestamp" json:"prediction_timestamp"`
}

// Alert represents a row in the 'alerts' table. Exactly one alert exists
// per High or Critical prediction.
type Alert struct {
	ID           int64     `db:"id" json:"id"`
	Message      string    `db:"message" json:"message"`
	PredictionID int64     `db:"prediction_id" json:"prediction_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
