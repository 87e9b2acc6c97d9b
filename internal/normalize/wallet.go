package normalize

import (
	"fmt"
	"math"
	"time"

	"tokenradar/internal/domain"
	"tokenradar/internal/idhash"
	"tokenradar/internal/tracker"
)

// activityWindow is how recently a wallet must have traded to count as
// active.
const activityWindow = 7 * 24 * time.Hour

// Rough SOL price used only for USD-to-SOL estimates on portfolio values;
// the provider reports portfolio totals in USD only.
const solPriceEstimateUSD = 200.0

// WalletFromTopTrader normalizes a top-trader summary into the canonical
// Wallet entity. The optional PnL breakdown refines timing, behavior and
// history; the optional portfolio snapshot fills current holdings.
func WalletFromTopTrader(trader tracker.TopTrader, pnl *tracker.WalletPnL, portfolio *tracker.WalletInfo) (*domain.Wallet, error) {
	return WalletFromTopTraderAt(trader, pnl, portfolio, time.Now())
}

// WalletFromTopTraderAt is WalletFromTopTrader with an explicit timestamp
// for activity-window checks and bookkeeping fields.
func WalletFromTopTraderAt(trader tracker.TopTrader, pnl *tracker.WalletPnL, portfolio *tracker.WalletInfo, now time.Time) (*domain.Wallet, error) {
	if err := idhash.ValidateAddress(trader.Address); err != nil {
		return nil, fmt.Errorf("%w: wallet address: %v", ErrInvalidInput, err)
	}

	return &domain.Wallet{
		Address: trader.Address,

		Classification: classifyTopTrader(trader, pnl),
		Performance:    performanceFromTopTrader(trader, pnl),
		Timing:         buildTiming(pnl),
		Behavior:       behaviorFromTopTrader(trader, pnl),
		Portfolio:      buildPortfolio(portfolio, now),
		History:        buildHistory(pnl, now),
		System:         systemFromTopTrader(trader, now),
	}, nil
}

// WalletFromPnL normalizes a detailed PnL record for a wallet that was not
// seen on the top-trader leaderboard. It produces the same canonical shape
// through the PnL-side derivations.
func WalletFromPnL(pnl tracker.WalletPnL, portfolio *tracker.WalletInfo) (*domain.Wallet, error) {
	return WalletFromPnLAt(pnl, portfolio, time.Now())
}

// WalletFromPnLAt is WalletFromPnL with an explicit timestamp.
func WalletFromPnLAt(pnl tracker.WalletPnL, portfolio *tracker.WalletInfo, now time.Time) (*domain.Wallet, error) {
	if err := idhash.ValidateAddress(pnl.Address); err != nil {
		return nil, fmt.Errorf("%w: wallet address: %v", ErrInvalidInput, err)
	}

	return &domain.Wallet{
		Address: pnl.Address,

		Classification: classifyFromPnL(pnl),
		Performance:    performanceFromPnL(pnl),
		Timing:         buildTiming(&pnl),
		Behavior:       behaviorFromPnL(pnl),
		Portfolio:      buildPortfolio(portfolio, now),
		History:        buildHistory(&pnl, now),
		System:         systemFromPnL(pnl, now),
	}, nil
}

// ClassifyPattern maps the wallet's average hold time to a trading pattern.
// Without any per-token PnL detail there is nothing to average, so the
// wallet classifies as a single-trade unknown.
func ClassifyPattern(pnl *tracker.WalletPnL) domain.TradingPattern {
	if pnl == nil {
		return domain.PatternOneTrade
	}

	avgHoldMinutes := averageHoldTimeMinutes(pnl.Tokens)
	switch {
	case avgHoldMinutes < 60:
		return domain.PatternScalper
	case avgHoldMinutes < 1440:
		return domain.PatternDayTrader
	case avgHoldMinutes < 10080:
		return domain.PatternSwing
	default:
		return domain.PatternHolder
	}
}

// ConfidenceScore rates how much evidence backs the top-trader stats: win
// rate as the base, step bonuses for sample size and realized profit,
// clamped to 100.
func ConfidenceScore(trader tracker.TopTrader) float64 {
	score := trader.WinRate

	switch {
	case trader.TotalTrades > 100:
		score += 20
	case trader.TotalTrades > 50:
		score += 10
	case trader.TotalTrades > 20:
		score += 5
	}

	switch {
	case trader.TotalPnl > 100:
		score += 15
	case trader.TotalPnl > 50:
		score += 10
	case trader.TotalPnl > 20:
		score += 5
	}

	return clamp(score, 0, 100)
}

func classifyTopTrader(trader tracker.TopTrader, pnl *tracker.WalletPnL) domain.WalletClassification {
	tier := ClassifyTier(trader.WinRate, trader.TotalPnl)

	walletType := domain.WalletTypeTopTrader
	if tier == domain.TierUnknown {
		walletType = domain.WalletTypePotentialSmart
	}

	return domain.WalletClassification{
		Type:            walletType,
		ConfidenceScore: ConfidenceScore(trader),
		Traits: domain.WalletTraits{
			IsEarlyEntrySpecialist: false,
			IsSwingTrader:          trader.TradesPerDay < 3,
			IsSniper:               trader.TradesPerDay > 10,
			IsScalper:              trader.TradesPerDay > 20,
			IsHodler:               trader.TradesPerDay < 0.5,
			IsDeveloper:            false,
			IsWhale:                trader.TotalPnl > 500,
		},
		Reputation: domain.Reputation{
			Score:         clamp((trader.WinRate+trader.ROI/10)/2, 0, 100),
			Tier:          tier,
			Rank:          trader.Rank,
			IsWhitelisted: tier.Ord() >= domain.TierGold.Ord(),
			IsBlacklisted: false,
		},
		TradingPattern: ClassifyPattern(pnl),
	}
}

func performanceFromTopTrader(trader tracker.TopTrader, pnl *tracker.WalletPnL) domain.WalletPerformance {
	// Without a PnL breakdown the leaderboard summary stands in for the
	// aggregate stats, with the unreported fields zeroed.
	stats := tracker.PnLStats{
		TotalTrades:   trader.TotalTrades,
		WinningTrades: trader.WinningTrades,
		LosingTrades:  trader.LosingTrades,
		WinRate:       trader.WinRate,
	}
	if trader.BestTrade != nil {
		stats.LargestWinSol = trader.BestTrade.ProfitSol
	}
	if pnl != nil {
		stats = pnl.Stats
	}

	realized := trader.TotalPnl
	unrealized := 0.0
	invested := 0.0
	if pnl != nil {
		realized = pnl.TotalRealizedPnl
		unrealized = pnl.TotalUnrealizedPnl
		invested = pnl.TotalInvested
	}

	totalPnlUSD := 0.0
	if trader.TotalPnlUSD != nil {
		totalPnlUSD = *trader.TotalPnlUSD
	}

	return domain.WalletPerformance{
		Trades: domain.TradeStats{
			Total:     trader.TotalTrades,
			Winning:   trader.WinningTrades,
			Losing:    trader.LosingTrades,
			Breakeven: trader.TotalTrades - trader.WinningTrades - trader.LosingTrades,
			WinRate:   trader.WinRate,
		},
		Pnl: domain.PnlBreakdown{
			TotalSol:         trader.TotalPnl,
			TotalUsd:         totalPnlUSD,
			RealizedSol:      realized,
			UnrealizedSol:    unrealized,
			TotalInvestedSol: invested,

			LargestWinSol:  stats.LargestWinSol,
			LargestLossSol: stats.LargestLossSol,
			AvgWinSol:      stats.AvgWinSol,
			AvgLossSol:     stats.AvgLossSol,
		},
		Returns: domain.ReturnStats{
			ROI:               trader.ROI,
			ProfitFactor:      stats.ProfitFactor,
			AvgReturnPerTrade: ratioOr(trader.TotalPnl, float64(trader.TotalTrades), 0),
		},
		// Streak data needs the full trade log, which the provider does not
		// expose; the collector leaves these zeroed.
		Consistency: domain.ConsistencyStats{},
		Recent: domain.RecentPerformance{
			Trades:  int(math.Floor(trader.TradesPerDay * 30)),
			WinRate: trader.WinRate,
			// Trailing-month estimate from lifetime figures.
			PnlSol: trader.TotalPnl * 0.3,
			ROI:    trader.ROI * 0.3,
		},
	}
}

func buildTiming(pnl *tracker.WalletPnL) domain.WalletTiming {
	timing := domain.WalletTiming{
		Entry: domain.EntryTiming{
			PreferredEntryWindow: "unknown",
		},
	}
	if pnl == nil {
		return timing
	}

	avgHoldMinutes := averageHoldTimeMinutes(pnl.Tokens)
	timing.Exit = domain.ExitTiming{
		AvgHoldTimeMinutes: avgHoldMinutes,
		AvgHoldTimeHours:   avgHoldMinutes / 60,
		AvgExitMultiplier:  averageMultiplier(pnl.Tokens),
		TakesLossesQuickly: false,
	}
	return timing
}

func behaviorFromTopTrader(trader tracker.TopTrader, pnl *tracker.WalletPnL) domain.WalletBehavior {
	avgBuySize := 0.0
	if pnl != nil && len(pnl.Tokens) > 0 {
		total := 0.0
		for _, t := range pnl.Tokens {
			total += t.TotalInvestedSol
		}
		avgBuySize = total / float64(len(pnl.Tokens))
	}

	isFollowed := trader.Rank != nil && *trader.Rank <= 100

	return domain.WalletBehavior{
		Sizing: positionSizing(avgBuySize),
		Frequency: domain.TradeFrequency{
			TradesPerDay:     trader.TradesPerDay,
			IsActiveWeekends: true,
			TradingDays:      trader.ActiveDays,
		},
		Patterns: domain.SocialPatterns{
			FollowsSmartMoney:  false,
			IsFollowedByOthers: isFollowed,
			CopiesWallets:      []string{},
			CopiedBy:           []string{},
		},
		Risk: riskPosture(trader.WinRate, trader.ActiveTokens > 10),
	}
}

func buildPortfolio(portfolio *tracker.WalletInfo, now time.Time) domain.WalletPortfolio {
	if portfolio == nil {
		return domain.WalletPortfolio{
			Sol:         domain.SolBalance{LastChecked: now.UTC()},
			TopHoldings: []domain.PortfolioHolding{},
		}
	}

	holdings := make([]domain.PortfolioHolding, 0, len(portfolio.Tokens))
	for _, t := range portfolio.Tokens {
		holdings = append(holdings, domain.PortfolioHolding{
			Mint:         t.Mint,
			Symbol:       t.Symbol,
			Name:         t.Name,
			Amount:       t.Amount,
			ValueUsd:     t.ValueUSD,
			Percentage:   t.Percentage,
			CurrentPrice: t.PriceUSD,
		})
	}

	return domain.WalletPortfolio{
		Current: domain.PortfolioTotals{
			TotalValueSol: portfolio.TotalValueUSD / solPriceEstimateUSD,
			TotalValueUsd: portfolio.TotalValueUSD,
			TokenCount:    portfolio.TokenCount,
		},
		Sol: domain.SolBalance{
			Balance:     portfolio.SolBalance,
			LastChecked: time.UnixMilli(portfolio.LastUpdated).UTC(),
		},
		TopHoldings: holdings,
		Composition: domain.PortfolioComposition{
			ActivePositions: portfolio.TokenCount,
			AvgPositionSize: ratioOr(portfolio.TotalValueUSD, float64(portfolio.TokenCount), 0),
		},
	}
}

func buildHistory(pnl *tracker.WalletPnL, now time.Time) domain.WalletHistory {
	if pnl == nil {
		return domain.WalletHistory{
			Summary: domain.TradeSummary{
				FirstTradeAt: now.UTC(),
				LastTradeAt:  now.UTC(),
			},
			SuccessfulTokens: []domain.SuccessfulToken{},
			FailedTokens:     []domain.FailedToken{},
		}
	}

	successful := []domain.SuccessfulToken{}
	failed := []domain.FailedToken{}
	for _, t := range pnl.Tokens {
		if t.IsWinner {
			st := domain.SuccessfulToken{
				Mint:              t.Mint,
				Symbol:            t.Symbol,
				Multiplier:        t.Multiplier,
				ProfitSol:         t.TotalPnl,
				HoldingPeriodDays: t.HoldingPeriodDays,
				EntryDate:         time.UnixMilli(t.FirstBuyAt).UTC(),
			}
			if t.LastSellAt != nil {
				exit := time.UnixMilli(*t.LastSellAt).UTC()
				st.ExitDate = &exit
			}
			successful = append(successful, st)
			continue
		}
		failed = append(failed, domain.FailedToken{
			Mint:        t.Mint,
			Symbol:      t.Symbol,
			LossSol:     math.Abs(t.TotalPnl),
			LossPercent: t.ROI,
		})
	}

	first, last := tradeWindow(pnl, now)

	return domain.WalletHistory{
		Summary: domain.TradeSummary{
			FirstTradeAt:       first,
			LastTradeAt:        last,
			TotalTrades:        pnl.Stats.TotalTrades,
			TotalVolumeSol:     pnl.TotalInvested,
			UniqueTokensTraded: len(pnl.Tokens),
		},
		SuccessfulTokens: successful,
		FailedTokens:     failed,
	}
}

func systemFromTopTrader(trader tracker.TopTrader, now time.Time) domain.WalletSystemInfo {
	firstSeen := time.UnixMilli(trader.FirstTradeAt).UTC()
	lastSeen := time.UnixMilli(trader.LastTradeAt).UTC()
	if lastSeen.Before(firstSeen) {
		lastSeen = firstSeen
	}

	monitored := trader.Rank != nil && *trader.Rank <= 100
	priority := "medium"
	if trader.Rank != nil && *trader.Rank <= 50 {
		priority = "high"
	}

	active := lastSeen.After(now.Add(-activityWindow))
	status := domain.WalletStatusInactive
	if active {
		status = domain.WalletStatusActive
	}

	return domain.WalletSystemInfo{
		FirstSeenAt:    firstSeen,
		LastSeenAt:     lastSeen,
		LastAnalyzedAt: now.UTC(),
		DiscoveredVia:  "top_traders",

		IsMonitored:        monitored,
		AlertsEnabled:      false,
		CopyTradingEnabled: false,
		Priority:           priority,

		TransactionCount: trader.TotalTrades,
		DataCompleteness: 75,

		Status:   status,
		IsActive: active,
		Tags:     []string{},
	}
}

func classifyFromPnL(pnl tracker.WalletPnL) domain.WalletClassification {
	tier := ClassifyTier(pnl.Stats.WinRate, pnl.TotalPnl)

	walletType := domain.WalletTypePotentialSmart
	if tier == domain.TierUnknown {
		walletType = domain.WalletTypeUnknown
	}

	confidence := 30.0
	if pnl.Stats.TotalTrades > 20 {
		confidence = 60
	}

	return domain.WalletClassification{
		Type:            walletType,
		ConfidenceScore: confidence,
		Traits: domain.WalletTraits{
			IsWhale: pnl.TotalPnl > 100,
		},
		Reputation: domain.Reputation{
			Score:         clamp(pnl.Stats.WinRate, 0, 100),
			Tier:          tier,
			IsWhitelisted: false,
			IsBlacklisted: false,
		},
		TradingPattern: ClassifyPattern(&pnl),
	}
}

func performanceFromPnL(pnl tracker.WalletPnL) domain.WalletPerformance {
	return domain.WalletPerformance{
		Trades: domain.TradeStats{
			Total:     pnl.Stats.TotalTrades,
			Winning:   pnl.Stats.WinningTrades,
			Losing:    pnl.Stats.LosingTrades,
			Breakeven: pnl.Stats.TotalTrades - pnl.Stats.WinningTrades - pnl.Stats.LosingTrades,
			WinRate:   pnl.Stats.WinRate,
		},
		Pnl: domain.PnlBreakdown{
			TotalSol:         pnl.TotalPnl,
			TotalUsd:         0,
			RealizedSol:      pnl.TotalRealizedPnl,
			UnrealizedSol:    pnl.TotalUnrealizedPnl,
			TotalInvestedSol: pnl.TotalInvested,

			LargestWinSol:  pnl.Stats.LargestWinSol,
			LargestLossSol: pnl.Stats.LargestLossSol,
			AvgWinSol:      pnl.Stats.AvgWinSol,
			AvgLossSol:     pnl.Stats.AvgLossSol,
		},
		Returns: domain.ReturnStats{
			ROI:               pnl.ROI,
			ProfitFactor:      pnl.Stats.ProfitFactor,
			AvgReturnPerTrade: ratioOr(pnl.TotalPnl, float64(pnl.Stats.TotalTrades), 0),
		},
		Consistency: domain.ConsistencyStats{},
		// No per-period breakdown on this path; lifetime figures stand in
		// for the recent window except the untracked trade count.
		Recent: domain.RecentPerformance{
			Trades:  0,
			WinRate: pnl.Stats.WinRate,
			PnlSol:  pnl.TotalPnl,
			ROI:     pnl.ROI,
		},
	}
}

func behaviorFromPnL(pnl tracker.WalletPnL) domain.WalletBehavior {
	avgBuySize := ratioOr(pnl.TotalInvested, float64(pnl.Stats.TotalTrades), 0)

	activeDays := 0
	if pnl.ActiveDays != nil {
		activeDays = *pnl.ActiveDays
	}

	return domain.WalletBehavior{
		Sizing: positionSizing(avgBuySize),
		Frequency: domain.TradeFrequency{
			TradesPerDay:     ratioOr(float64(pnl.Stats.TotalTrades), float64(activeDays), 0),
			IsActiveWeekends: true,
			TradingDays:      activeDays,
		},
		Patterns: domain.SocialPatterns{
			CopiesWallets: []string{},
			CopiedBy:      []string{},
		},
		Risk: riskPosture(pnl.Stats.WinRate, len(pnl.Tokens) > 10),
	}
}

func systemFromPnL(pnl tracker.WalletPnL, now time.Time) domain.WalletSystemInfo {
	first, last := tradeWindow(&pnl, now)

	return domain.WalletSystemInfo{
		FirstSeenAt:    first,
		LastSeenAt:     last,
		LastAnalyzedAt: now.UTC(),
		DiscoveredVia:  "manual",

		IsMonitored:        false,
		AlertsEnabled:      false,
		CopyTradingEnabled: false,
		Priority:           "medium",

		TransactionCount: pnl.Stats.TotalTrades,
		DataCompleteness: 60,

		Status:   domain.WalletStatusActive,
		IsActive: true,
		Tags:     []string{},
	}
}

// averageHoldTimeMinutes is the mean per-token average hold time in minutes.
// An empty token list averages to zero.
func averageHoldTimeMinutes(tokens []tracker.TokenPnL) float64 {
	if len(tokens) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range tokens {
		if t.AvgHoldTimeHours != nil {
			total += *t.AvgHoldTimeHours * 60
		}
	}
	return total / float64(len(tokens))
}

// averageMultiplier is the mean exit multiplier. With no positions the
// neutral multiplier is 1 (no gain, no loss).
func averageMultiplier(tokens []tracker.TokenPnL) float64 {
	if len(tokens) == 0 {
		return 1
	}
	total := 0.0
	for _, t := range tokens {
		total += t.Multiplier
	}
	return total / float64(len(tokens))
}

// tradeWindow resolves the wallet's first and last trade times, defaulting
// to now when the provider omits them, and never lets last precede first.
func tradeWindow(pnl *tracker.WalletPnL, now time.Time) (first, last time.Time) {
	first = now.UTC()
	last = now.UTC()
	if pnl.FirstTradeAt != nil {
		first = time.UnixMilli(*pnl.FirstTradeAt).UTC()
	}
	if pnl.LastTradeAt != nil {
		last = time.UnixMilli(*pnl.LastTradeAt).UTC()
	}
	if last.Before(first) {
		last = first
	}
	return first, last
}

func positionSizing(avgBuySize float64) domain.PositionSizing {
	return domain.PositionSizing{
		AvgBuySizeSol: avgBuySize,
		// Sell sizes are not reported; estimated at 80% of the buy side.
		AvgSellSizeSol: avgBuySize * 0.8,
	}
}

func riskPosture(winRate float64, diversified bool) domain.RiskPosture {
	posture := domain.RiskPosture{
		AverageRiskLevel: "aggressive",
		Diversification:  40,
		UsesStopLosses:   winRate > 60,
	}
	if winRate > 70 {
		posture.AverageRiskLevel = "conservative"
	}
	if diversified {
		posture.Diversification = 80
	}
	return posture
}
