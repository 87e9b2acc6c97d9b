package domain

// RiskLevel is a discrete risk classification derived from the risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// String returns the string representation of RiskLevel.
func (l RiskLevel) String() string {
	return string(l)
}

// IsValid checks if the level is a known value.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// Risk recommendation constants.
const (
	RecommendationAvoid        = "avoid"
	RecommendationHighRisk     = "high-risk"
	RecommendationModerateRisk = "moderate-risk"
	RecommendationAcceptable   = "acceptable"
)
