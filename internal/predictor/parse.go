package predictor

import (
	"regexp"
	"strconv"
	"strings"

	"rockfall-backend/internal/models"
)

// The engine prints a single line of the form:
//
//	The chance of rockfall is 84.53%. Top contributing factors: Rainfall (mm/day) (32.10%), Cohesion (kPa) (21.00%).
//
// Parsing is deliberately permissive: text that matches nothing yields a
// zero score and no factors, never an error. A malformed engine reply
// degrades to a Low classification instead of failing the row.
var (
	riskScoreRe = regexp.MustCompile(`The chance of rockfall is ([\d.]+)%`)
	factorsRe   = regexp.MustCompile(`Top contributing factors: (.+)`)
	factorRe    = regexp.MustCompile(`([\w\s]+) \(([\w/]+)\) \((\d+\.\d+)%\)`)
)

// ParsedPrediction is the structured form of the engine's output text.
type ParsedPrediction struct {
	RiskScore           float64
	RiskLevel           models.RiskLevel
	ContributingFactors models.ContributingFactors
}

// ParseEngineOutput extracts the risk score and contributing factors from
// the engine's raw text and classifies the score. It is total: any input,
// including garbage, produces a result.
func ParseEngineOutput(raw string) ParsedPrediction {
	var score float64
	if m := riskScoreRe.FindStringSubmatch(raw); m != nil {
		// The pattern can only capture digits and dots; a parse failure
		// here (e.g. "1.2.3") keeps the zero default.
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			score = v
		}
	}

	factors := models.ContributingFactors{}
	if m := factorsRe.FindStringSubmatch(raw); m != nil {
		factorsText := strings.TrimSuffix(strings.TrimSpace(m[1]), ".")
		for _, f := range factorRe.FindAllStringSubmatch(factorsText, -1) {
			contribution, err := strconv.ParseFloat(f[3], 64)
			if err != nil {
				continue
			}
			factors = append(factors, models.ContributingFactor{
				Factor:       strings.TrimSpace(f[1]),
				Unit:         strings.TrimSpace(f[2]),
				Contribution: contribution,
			})
		}
	}

	return ParsedPrediction{
		RiskScore:           score,
		RiskLevel:           ClassifyRiskScore(score),
		ContributingFactors: factors,
	}
}
