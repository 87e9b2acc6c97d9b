package normalize

import (
	"math"

	"tokenradar/internal/tracker"
)

// Step-function scorers mapping raw magnitudes to 0-100 scores. Liquidity
// and volume breakpoints are USD, holder breakpoints are raw counts; all
// three share the same score ladder.

// ScoreLiquidity rates USD liquidity on the standard ladder.
func ScoreLiquidity(liquidityUSD float64) int {
	switch {
	case liquidityUSD > 100000:
		return 100
	case liquidityUSD > 50000:
		return 80
	case liquidityUSD > 20000:
		return 60
	case liquidityUSD > 10000:
		return 40
	case liquidityUSD > 5000:
		return 20
	default:
		return 10
	}
}

// ScoreHolders rates the holder count.
func ScoreHolders(holders int) int {
	switch {
	case holders > 1000:
		return 100
	case holders > 500:
		return 80
	case holders > 200:
		return 60
	case holders > 100:
		return 40
	case holders > 50:
		return 20
	default:
		return 10
	}
}

// ScoreVolume rates 24h USD volume; an absent volume scores as zero volume.
func ScoreVolume(volume24h *float64) int {
	vol := 0.0
	if volume24h != nil {
		vol = *volume24h
	}
	switch {
	case vol > 100000:
		return 100
	case vol > 50000:
		return 80
	case vol > 20000:
		return 60
	case vol > 10000:
		return 40
	case vol > 5000:
		return 20
	default:
		return 10
	}
}

// ScoreSafety starts from 100 and subtracts a fixed penalty per red flag,
// floored at 0. The flag thresholds match the heuristic risk path.
func ScoreSafety(raw tracker.Token) int {
	score := 100

	if raw.MintAuthority != nil {
		score -= 30
	}
	if raw.FreezeAuthority != nil {
		score -= 20
	}
	if raw.Dev > devHoldingLimit {
		score -= 20
	}
	if raw.Top10 > top10HoldingLimit {
		score -= 15
	}
	if raw.LpBurn < 100 {
		score -= 15
	}

	if score < 0 {
		return 0
	}
	return score
}

// Composite weights. Liquidity carries the most signal for young tokens;
// safety and volume split the next band; holder count trails because it is
// the easiest metric to fake.
const (
	weightLiquidity = 0.30
	weightSafety    = 0.25
	weightVolume    = 0.25
	weightHolders   = 0.20
)

// OverallScore combines the component scores into the 0-100 composite used
// for ranking. Weights sum to 1, so the result stays in range; clamping
// guards against future weight edits.
func OverallScore(liquidity, safety, volume, holders int) int {
	weighted := weightLiquidity*float64(liquidity) +
		weightSafety*float64(safety) +
		weightVolume*float64(volume) +
		weightHolders*float64(holders)

	return int(clamp(math.Round(weighted), 0, 100))
}
