package normalize

import "tokenradar/internal/domain"

// ClassifyTier maps (winRate, totalPnl) to a reputation tier by walking
// domain.TierThresholds top-down. Both minimums must hold for a tier to
// match; a wallet below every row is TierUnknown.
func ClassifyTier(winRate, totalPnl float64) domain.TraderTier {
	for _, th := range domain.TierThresholds {
		if winRate >= th.MinWinRate && totalPnl >= th.MinPnl {
			return th.Tier
		}
	}
	return domain.TierUnknown
}
