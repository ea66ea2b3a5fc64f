package predictor

import "rockfall-backend/internal/models"

// ClassifyRiskScore maps a risk score in percent to a severity level using
// half-open intervals: [0,30) Low, [30,60) Moderate, [60,85) High,
// [85,inf) Critical. The score is not clamped: out-of-range values from a
// misbehaving engine still classify (negative scores land in Low).
func ClassifyRiskScore(score float64) models.RiskLevel {
	switch {
	case score < 30:
		return models.RiskLow
	case score < 60:
		return models.RiskModerate
	case score < 85:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}
