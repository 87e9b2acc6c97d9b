package normalize

import (
	"fmt"

	"tokenradar/internal/domain"
	"tokenradar/internal/tracker"
)

// Heuristic risk thresholds and penalties, applied when no provider
// assessment is available. The same thresholds drive the boolean flag set
// on both paths so flags never disagree with the raw facts.
const (
	devHoldingLimit   = 20.0 // percent of supply
	top10HoldingLimit = 50.0
	liquidityFloorUSD = 5000.0

	penaltyDevHolding   = 2
	penaltyTop10Holding = 2
	penaltyLowLiquidity = 3
	penaltyMintOpen     = 3
	penaltyFreezeOpen   = 2

	maxRiskScore = 10.0
)

// RiskLevelForScore maps a 0-10 risk score to its discrete level. Level is
// always derived from score, never assigned independently.
func RiskLevelForScore(score float64) domain.RiskLevel {
	switch {
	case score < 3:
		return domain.RiskLevelLow
	case score < 5:
		return domain.RiskLevelMedium
	case score < 7:
		return domain.RiskLevelHigh
	default:
		return domain.RiskLevelCritical
	}
}

// buildRisk assembles the token risk record. With a provider assessment the
// score, level, recommendation and string lists are passed through verbatim;
// without one a heuristic score is accumulated from the raw safety facts.
// The boolean flag set is recomputed locally on both paths.
func buildRisk(raw tracker.Token, risk *tracker.RiskData) domain.TokenRisk {
	if risk != nil {
		return passThroughRisk(raw, risk)
	}
	return heuristicRisk(raw)
}

func passThroughRisk(raw tracker.Token, risk *tracker.RiskData) domain.TokenRisk {
	score := clamp(risk.RiskScore, 0, maxRiskScore)

	level := domain.RiskLevel(risk.RiskLevel)
	if !level.IsValid() {
		level = RiskLevelForScore(score)
	}

	return domain.TokenRisk{
		Overall: domain.RiskOverall{
			Score:          score,
			Level:          level,
			Recommendation: risk.Recommendation,
		},
		Warnings:        risk.Warnings,
		Dangers:         risk.Dangers,
		LiquidityIssues: risk.LiquidityIssues,
		InsiderRisks:    risk.InsiderRisks,
		Analysis: domain.RiskAnalysis{
			SocialPresence:     risk.Analysis.SocialPresence,
			LiquidityRating:    risk.Analysis.LiquidityRating,
			HolderDistribution: risk.Analysis.HolderDistribution,
			ContractSafety:     risk.Analysis.ContractSafety,
		},
		Flags: riskFlags(raw, level == domain.RiskLevelCritical),
	}
}

func heuristicRisk(raw tracker.Token) domain.TokenRisk {
	score := 0
	warnings := []string{}
	dangers := []string{}

	if raw.Dev > devHoldingLimit {
		score += penaltyDevHolding
		warnings = append(warnings, fmt.Sprintf("Developer holds %.1f%% of supply", raw.Dev))
	}
	if raw.Top10 > top10HoldingLimit {
		score += penaltyTop10Holding
		warnings = append(warnings, fmt.Sprintf("Top 10 holders control %.1f%% of supply", raw.Top10))
	}
	if raw.LiquidityUSD < liquidityFloorUSD {
		score += penaltyLowLiquidity
		dangers = append(dangers, fmt.Sprintf("Low liquidity: $%.0f", raw.LiquidityUSD))
	}
	if raw.MintAuthority != nil {
		score += penaltyMintOpen
		dangers = append(dangers, "Mint authority not disabled")
	}
	if raw.FreezeAuthority != nil {
		score += penaltyFreezeOpen
		dangers = append(dangers, "Freeze authority not disabled")
	}

	clamped := clamp(float64(score), 0, maxRiskScore)

	recommendation := domain.RecommendationAcceptable
	if clamped >= 5 {
		recommendation = domain.RecommendationHighRisk
	}

	analysis := domain.RiskAnalysis{
		SocialPresence:     "low",
		LiquidityRating:    "poor",
		HolderDistribution: "concerning",
		ContractSafety:     "risky",
	}
	if raw.HasSocials {
		analysis.SocialPresence = "medium"
	}
	if raw.LiquidityUSD > 20000 {
		analysis.LiquidityRating = "good"
	}
	if raw.Top10 < 40 {
		analysis.HolderDistribution = "healthy"
	}
	if raw.MintAuthority == nil {
		analysis.ContractSafety = "safe"
	}

	return domain.TokenRisk{
		Overall: domain.RiskOverall{
			Score:          clamped,
			Level:          RiskLevelForScore(clamped),
			Recommendation: recommendation,
		},
		Warnings:        warnings,
		Dangers:         dangers,
		LiquidityIssues: []string{},
		InsiderRisks:    []string{},
		Analysis:        analysis,
		Flags:           riskFlags(raw, clamped >= 7),
	}
}

// riskFlags computes the boolean red-flag set from raw facts. The rugpull
// flag takes the path-specific criticality signal: provider level on the
// pass-through path, score threshold on the heuristic path.
func riskFlags(raw tracker.Token, possibleRugpull bool) domain.RiskFlags {
	return domain.RiskFlags{
		DevHoldingTooHigh:   raw.Dev > devHoldingLimit,
		Top10HoldingTooHigh: raw.Top10 > top10HoldingLimit,
		LiquidityTooLow:     raw.LiquidityUSD < liquidityFloorUSD,
		SuspiciousActivity:  false,
		RecentDevDump:       false,
		PossibleRugpull:     possibleRugpull,
	}
}
