package predictor

import (
	"testing"

	"rockfall-backend/internal/models"
)

func TestClassifyRiskScore_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{29.999, models.RiskLow},
		{30.0, models.RiskModerate},
		{59.999, models.RiskModerate},
		{60.0, models.RiskHigh},
		{84.999, models.RiskHigh},
		{85.0, models.RiskCritical},
		{100.0, models.RiskCritical},
	}

	for _, c := range cases {
		if got := ClassifyRiskScore(c.score); got != c.want {
			t.Errorf("ClassifyRiskScore(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestClassifyRiskScore_UnclampedInput(t *testing.T) {
	// Malformed engine output can produce out-of-range scores; they still
	// classify instead of erroring.
	if got := ClassifyRiskScore(250.0); got != models.RiskCritical {
		t.Errorf("ClassifyRiskScore(250) = %s, want Critical", got)
	}
	if got := ClassifyRiskScore(-5.0); got != models.RiskLow {
		t.Errorf("ClassifyRiskScore(-5) = %s, want Low", got)
	}
}
