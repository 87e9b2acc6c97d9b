package normalize

import (
	"errors"
	"testing"

	"tokenradar/internal/domain"
	"tokenradar/internal/tracker"
)

const testWallet = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func baseTopTrader() tracker.TopTrader {
	return tracker.TopTrader{
		Address: testWallet,

		TotalPnl: 600,
		ROI:      150,
		WinRate:  82,

		TotalTrades:   150,
		WinningTrades: 123,
		LosingTrades:  25,
		ActiveTokens:  12,

		LastTradeAt:  testNow - 3600000, // one hour ago
		FirstTradeAt: testNow - 90*86400000,
		ActiveDays:   60,
		TradesPerDay: 2.5,

		Rank: intPtr(7),
	}
}

func basePnL() tracker.WalletPnL {
	return tracker.WalletPnL{
		Address: testWallet,

		TotalRealizedPnl:   500,
		TotalUnrealizedPnl: 100,
		TotalPnl:           600,
		TotalInvested:      300,
		ROI:                150,

		Tokens: []tracker.TokenPnL{
			{
				Mint:             testMint,
				Symbol:           "WSOL",
				TotalInvestedSol: 100,
				TotalPnl:         400,
				ROI:              400,
				IsWinner:         true,
				Multiplier:       5,
				FirstBuyAt:       testNow - 20*86400000,
				LastSellAt:       int64Ptr(testNow - 10*86400000),
				AvgHoldTimeHours: floatPtr(4),
			},
			{
				Mint:             "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
				Symbol:           "JUP",
				TotalInvestedSol: 200,
				TotalPnl:         -50,
				ROI:              -25,
				IsWinner:         false,
				Multiplier:       0.75,
				FirstBuyAt:       testNow - 5*86400000,
				AvgHoldTimeHours: floatPtr(2),
			},
		},

		Stats: tracker.PnLStats{
			TotalTrades:    150,
			WinningTrades:  123,
			LosingTrades:   25,
			WinRate:        82,
			AvgWinSol:      6,
			AvgLossSol:     2,
			ProfitFactor:   3.2,
			LargestWinSol:  400,
			LargestLossSol: 50,
		},

		FirstTradeAt: int64Ptr(testNow - 90*86400000),
		LastTradeAt:  int64Ptr(testNow - 3600000),
		ActiveDays:   intPtr(60),
	}
}

func TestWalletFromTopTraderAt_RequiresAddress(t *testing.T) {
	trader := baseTopTrader()
	trader.Address = ""
	if _, err := WalletFromTopTraderAt(trader, nil, nil, fixedNow()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestConfidenceScore_ClampsToHundred(t *testing.T) {
	// 82 + 20 (trades > 100) + 15 (pnl > 100) = 117 → 100.
	if got := ConfidenceScore(baseTopTrader()); got != 100 {
		t.Errorf("confidence = %v, want clamped 100", got)
	}

	// 40 + 5 (trades > 20) + 5 (pnl > 20) = 50.
	small := tracker.TopTrader{WinRate: 40, TotalTrades: 25, TotalPnl: 30}
	if got := ConfidenceScore(small); got != 50 {
		t.Errorf("confidence = %v, want 50", got)
	}

	// No bonuses at or below the lowest breakpoints.
	tiny := tracker.TopTrader{WinRate: 33, TotalTrades: 20, TotalPnl: 20}
	if got := ConfidenceScore(tiny); got != 33 {
		t.Errorf("confidence = %v, want bare win rate 33", got)
	}
}

func TestWalletFromTopTraderAt_Classification(t *testing.T) {
	w, err := WalletFromTopTraderAt(baseTopTrader(), nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	c := w.Classification
	if c.Type != domain.WalletTypeTopTrader {
		t.Errorf("type = %v, want top_trader", c.Type)
	}
	// winRate 82, pnl 600 → Diamond.
	if c.Reputation.Tier != domain.TierDiamond {
		t.Errorf("tier = %v, want diamond", c.Reputation.Tier)
	}
	if c.ConfidenceScore != 100 {
		t.Errorf("confidence = %v, want 100", c.ConfidenceScore)
	}
	if !c.Reputation.IsWhitelisted {
		t.Error("diamond tier must be whitelisted (gold and above)")
	}
	if c.Reputation.Rank == nil || *c.Reputation.Rank != 7 {
		t.Errorf("rank = %v, want 7", c.Reputation.Rank)
	}
	// (82 + 150/10) / 2 = 48.5
	if c.Reputation.Score != 48.5 {
		t.Errorf("reputation score = %v, want 48.5", c.Reputation.Score)
	}
	// No PnL detail → single-trade classification.
	if c.TradingPattern != domain.PatternOneTrade {
		t.Errorf("pattern = %v, want one_trade without pnl detail", c.TradingPattern)
	}
	if c.Traits.IsWhale != true {
		t.Error("pnl 600 must mark whale")
	}
	if c.Traits.IsSwingTrader != true { // 2.5 trades/day < 3
		t.Error("2.5 trades/day must mark swing trader")
	}
	if c.Traits.IsSniper || c.Traits.IsScalper || c.Traits.IsHodler {
		t.Error("2.5 trades/day matches no other cadence trait")
	}
}

func TestWalletFromTopTraderAt_UnknownTierIsPotentialSmart(t *testing.T) {
	trader := baseTopTrader()
	trader.WinRate = 30
	trader.TotalPnl = 2

	w, err := WalletFromTopTraderAt(trader, nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	if w.Classification.Reputation.Tier != domain.TierUnknown {
		t.Errorf("tier = %v, want unknown", w.Classification.Reputation.Tier)
	}
	if w.Classification.Type != domain.WalletTypePotentialSmart {
		t.Errorf("type = %v, want potential_smart", w.Classification.Type)
	}
	if w.Classification.Reputation.IsWhitelisted {
		t.Error("unknown tier must not be whitelisted")
	}
}

func TestWalletFromTopTraderAt_Performance(t *testing.T) {
	pnl := basePnL()
	w, err := WalletFromTopTraderAt(baseTopTrader(), &pnl, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	p := w.Performance
	if p.Trades.Breakeven != 2 { // 150 - 123 - 25
		t.Errorf("breakeven = %d, want 2", p.Trades.Breakeven)
	}
	if p.Pnl.RealizedSol != 500 || p.Pnl.UnrealizedSol != 100 {
		t.Errorf("realized/unrealized = %v/%v, want pnl detail values", p.Pnl.RealizedSol, p.Pnl.UnrealizedSol)
	}
	if p.Pnl.LargestWinSol != 400 {
		t.Errorf("largestWin = %v, want stats value", p.Pnl.LargestWinSol)
	}
	// 600 / 150
	if p.Returns.AvgReturnPerTrade != 4 {
		t.Errorf("avgReturnPerTrade = %v, want 4", p.Returns.AvgReturnPerTrade)
	}
	// floor(2.5 * 30)
	if p.Recent.Trades != 75 {
		t.Errorf("recent trades = %d, want 75", p.Recent.Trades)
	}
}

func TestWalletFromTopTraderAt_ZeroTrades(t *testing.T) {
	trader := tracker.TopTrader{Address: testWallet}

	w, err := WalletFromTopTraderAt(trader, nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("zeroed trader must normalize, got %v", err)
	}

	if w.Performance.Returns.AvgReturnPerTrade != 0 {
		t.Errorf("avgReturnPerTrade = %v, want 0 with no trades", w.Performance.Returns.AvgReturnPerTrade)
	}
	if w.Behavior.Sizing.AvgBuySizeSol != 0 {
		t.Errorf("avgBuySize = %v, want 0 without pnl detail", w.Behavior.Sizing.AvgBuySizeSol)
	}
	if w.Timing.Exit.AvgHoldTimeMinutes != 0 {
		t.Errorf("avgHoldTime = %v, want 0", w.Timing.Exit.AvgHoldTimeMinutes)
	}
}

func TestWalletTiming_FromPnLDetail(t *testing.T) {
	pnl := basePnL()
	w, err := WalletFromTopTraderAt(baseTopTrader(), &pnl, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	// (4h + 2h) / 2 = 3h = 180 min.
	if w.Timing.Exit.AvgHoldTimeMinutes != 180 {
		t.Errorf("avgHoldTimeMinutes = %v, want 180", w.Timing.Exit.AvgHoldTimeMinutes)
	}
	if w.Timing.Exit.AvgHoldTimeHours != 3 {
		t.Errorf("avgHoldTimeHours = %v, want 3", w.Timing.Exit.AvgHoldTimeHours)
	}
	// (5 + 0.75) / 2
	if w.Timing.Exit.AvgExitMultiplier != 2.875 {
		t.Errorf("avgExitMultiplier = %v, want 2.875", w.Timing.Exit.AvgExitMultiplier)
	}
	// 180 min is intraday.
	if w.Classification.TradingPattern != domain.PatternDayTrader {
		t.Errorf("pattern = %v, want day_trader", w.Classification.TradingPattern)
	}
}

func TestClassifyPattern_HoldTimeBands(t *testing.T) {
	withHold := func(hours float64) *tracker.WalletPnL {
		return &tracker.WalletPnL{Tokens: []tracker.TokenPnL{{AvgHoldTimeHours: &hours}}}
	}

	cases := []struct {
		name string
		pnl  *tracker.WalletPnL
		want domain.TradingPattern
	}{
		{"nil pnl", nil, domain.PatternOneTrade},
		{"30 min", withHold(0.5), domain.PatternScalper},
		{"5 hours", withHold(5), domain.PatternDayTrader},
		{"2 days", withHold(48), domain.PatternSwing},
		{"30 days", withHold(720), domain.PatternHolder},
		{"empty token list", &tracker.WalletPnL{}, domain.PatternScalper}, // 0 min average
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyPattern(tc.pnl); got != tc.want {
				t.Errorf("ClassifyPattern = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWalletFromPnLAt(t *testing.T) {
	w, err := WalletFromPnLAt(basePnL(), nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromPnLAt: %v", err)
	}

	// winRate 82, pnl 600 → Diamond, but the PnL path without leaderboard
	// corroboration only grades potential smart money.
	if w.Classification.Type != domain.WalletTypePotentialSmart {
		t.Errorf("type = %v, want potential_smart", w.Classification.Type)
	}
	if w.Classification.Reputation.Tier != domain.TierDiamond {
		t.Errorf("tier = %v, want diamond", w.Classification.Reputation.Tier)
	}
	if w.Classification.ConfidenceScore != 60 { // > 20 trades
		t.Errorf("confidence = %v, want 60", w.Classification.ConfidenceScore)
	}

	// 300 invested / 150 trades.
	if w.Behavior.Sizing.AvgBuySizeSol != 2 {
		t.Errorf("avgBuySize = %v, want 2", w.Behavior.Sizing.AvgBuySizeSol)
	}
	// 150 trades / 60 active days.
	if w.Behavior.Frequency.TradesPerDay != 2.5 {
		t.Errorf("tradesPerDay = %v, want 2.5", w.Behavior.Frequency.TradesPerDay)
	}

	if w.System.DiscoveredVia != "manual" {
		t.Errorf("discoveredVia = %q, want manual", w.System.DiscoveredVia)
	}
	if w.System.DataCompleteness != 60 {
		t.Errorf("dataCompleteness = %d, want 60", w.System.DataCompleteness)
	}

	if len(w.History.SuccessfulTokens) != 1 || len(w.History.FailedTokens) != 1 {
		t.Fatalf("history split = %d/%d, want 1/1",
			len(w.History.SuccessfulTokens), len(w.History.FailedTokens))
	}
	if w.History.SuccessfulTokens[0].Multiplier != 5 {
		t.Errorf("winner multiplier = %v, want 5", w.History.SuccessfulTokens[0].Multiplier)
	}
	if w.History.FailedTokens[0].LossSol != 50 {
		t.Errorf("loss = %v, want abs(-50)", w.History.FailedTokens[0].LossSol)
	}
	if w.History.Summary.UniqueTokensTraded != 2 {
		t.Errorf("uniqueTokensTraded = %d, want 2", w.History.Summary.UniqueTokensTraded)
	}
}

func TestWalletFromPnLAt_ZeroActivity(t *testing.T) {
	pnl := tracker.WalletPnL{Address: testWallet}

	w, err := WalletFromPnLAt(pnl, nil, fixedNow())
	if err != nil {
		t.Fatalf("empty pnl must normalize, got %v", err)
	}

	if w.Performance.Returns.AvgReturnPerTrade != 0 {
		t.Errorf("avgReturnPerTrade = %v, want 0", w.Performance.Returns.AvgReturnPerTrade)
	}
	if w.Behavior.Sizing.AvgBuySizeSol != 0 {
		t.Errorf("avgBuySize = %v, want 0", w.Behavior.Sizing.AvgBuySizeSol)
	}
	if w.Behavior.Frequency.TradesPerDay != 0 {
		t.Errorf("tradesPerDay = %v, want 0 with no active days", w.Behavior.Frequency.TradesPerDay)
	}
	// Missing trade timestamps default to now; window stays ordered.
	if w.System.FirstSeenAt.After(w.System.LastSeenAt) {
		t.Error("firstSeenAt must not be after lastSeenAt")
	}
}

func TestWalletPortfolio_Mapping(t *testing.T) {
	info := &tracker.WalletInfo{
		Address:    testWallet,
		SolBalance: 42,
		Tokens: []tracker.TokenHolding{
			{Mint: testMint, Symbol: "WSOL", Amount: 10, ValueUSD: 2000, PriceUSD: 200, Percentage: 50},
		},
		TokenCount:    4,
		TotalValueUSD: 4000,
		LastUpdated:   testNow,
	}

	w, err := WalletFromTopTraderAt(baseTopTrader(), nil, info, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	p := w.Portfolio
	if p.Current.TotalValueSol != 20 { // 4000 / 200 estimate
		t.Errorf("totalValueSol = %v, want 20", p.Current.TotalValueSol)
	}
	if p.Sol.Balance != 42 {
		t.Errorf("sol balance = %v, want 42", p.Sol.Balance)
	}
	if len(p.TopHoldings) != 1 || p.TopHoldings[0].Symbol != "WSOL" {
		t.Errorf("holdings = %+v", p.TopHoldings)
	}
	if p.Composition.AvgPositionSize != 1000 { // 4000 / 4
		t.Errorf("avgPositionSize = %v, want 1000", p.Composition.AvgPositionSize)
	}
}

func TestWalletPortfolio_AbsentSnapshot(t *testing.T) {
	w, err := WalletFromTopTraderAt(baseTopTrader(), nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}

	p := w.Portfolio
	if p.Current.TotalValueSol != 0 || p.Current.TokenCount != 0 {
		t.Errorf("absent portfolio must be zeroed, got %+v", p.Current)
	}
	if p.TopHoldings == nil || len(p.TopHoldings) != 0 {
		t.Errorf("holdings = %v, want empty non-nil", p.TopHoldings)
	}
	if !p.Sol.LastChecked.Equal(fixedNow()) {
		t.Errorf("lastChecked = %v, want fixed now", p.Sol.LastChecked)
	}
}

func TestWalletSystem_ActivityWindow(t *testing.T) {
	trader := baseTopTrader()
	w, err := WalletFromTopTraderAt(trader, nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}
	if !w.System.IsActive || w.System.Status != domain.WalletStatusActive {
		t.Error("trade an hour ago must be active")
	}
	if !w.System.IsMonitored { // rank 7 <= 100
		t.Error("rank 7 must be monitored")
	}
	if w.System.Priority != "high" { // rank 7 <= 50
		t.Errorf("priority = %q, want high", w.System.Priority)
	}

	trader.LastTradeAt = testNow - 30*86400000 // a month ago
	trader.Rank = intPtr(80)
	w, err = WalletFromTopTraderAt(trader, nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}
	if w.System.IsActive || w.System.Status != domain.WalletStatusInactive {
		t.Error("trade a month ago must be inactive")
	}
	if !w.System.IsMonitored {
		t.Error("rank 80 must still be monitored")
	}
	if w.System.Priority != "medium" {
		t.Errorf("priority = %q, want medium for rank 80", w.System.Priority)
	}

	if w.System.FirstSeenAt.After(w.System.LastSeenAt) {
		t.Error("firstSeenAt must not be after lastSeenAt")
	}
}

func TestAverageMultiplier_EmptyIsNeutral(t *testing.T) {
	if got := averageMultiplier(nil); got != 1 {
		t.Errorf("averageMultiplier(nil) = %v, want neutral 1", got)
	}
}

func TestWalletScoresWithinBounds(t *testing.T) {
	traders := []tracker.TopTrader{
		baseTopTrader(),
		{Address: testWallet},
		{Address: testWallet, WinRate: 100, TotalPnl: 10000, TotalTrades: 5000, ROI: 900},
		{Address: testWallet, WinRate: 1, TotalPnl: -300, TotalTrades: 3, ROI: -90},
	}

	for i, trader := range traders {
		w, err := WalletFromTopTraderAt(trader, nil, nil, fixedNow())
		if err != nil {
			t.Fatalf("trader %d: %v", i, err)
		}
		if c := w.Classification.ConfidenceScore; c < 0 || c > 100 {
			t.Errorf("trader %d: confidence %v out of [0,100]", i, c)
		}
		if s := w.Classification.Reputation.Score; s < 0 || s > 100 {
			t.Errorf("trader %d: reputation %v out of [0,100]", i, s)
		}
	}
}

func TestWalletFromTopTraderAt_NoDataRefreshBeforeLastTrade(t *testing.T) {
	// lastAnalyzedAt always carries the normalization timestamp.
	w, err := WalletFromTopTraderAt(baseTopTrader(), nil, nil, fixedNow())
	if err != nil {
		t.Fatalf("WalletFromTopTraderAt: %v", err)
	}
	if !w.System.LastAnalyzedAt.Equal(fixedNow()) {
		t.Errorf("lastAnalyzedAt = %v, want fixed now", w.System.LastAnalyzedAt)
	}
}
