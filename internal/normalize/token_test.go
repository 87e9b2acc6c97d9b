package normalize

import (
	"errors"
	"testing"
	"time"

	"tokenradar/internal/domain"
	"tokenradar/internal/tracker"
)

const (
	testMint = "So11111111111111111111111111111111111111112"
	testNow  = int64(1756400000000) // 2025-08-28T16:53:20Z in ms
)

func fixedNow() time.Time {
	return time.UnixMilli(testNow).UTC()
}

func baseRawToken() tracker.Token {
	return tracker.Token{
		Mint:     testMint,
		Symbol:   "WSOL",
		Name:     "Wrapped SOL",
		Decimals: 9,

		PoolAddress: "pool1",
		QuoteToken:  "USDC",
		Market:      "raydium",

		LiquidityUSD: 50000,
		MarketCapUSD: 200000,
		PriceUSD:     0.0002,

		Volume24h: floatPtr(30000),

		Buys:              600,
		Sells:             400,
		TotalTransactions: 1000,

		Holders: 300,
		Top10:   25,
		Dev:     3,
		LpBurn:  100,

		Deployer: "dev1",
		Status:   "default",

		CreatedAt:   testNow - 86400000,
		LastUpdated: testNow - 60000,
	}
}

func TestTokenAt_RequiresIdentifiers(t *testing.T) {
	raw := baseRawToken()
	raw.Mint = "not-base58-0OIl"
	if _, err := TokenAt(raw, nil, fixedNow()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad mint: err = %v, want ErrInvalidInput", err)
	}

	raw = baseRawToken()
	raw.Symbol = ""
	if _, err := TokenAt(raw, nil, fixedNow()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty symbol: err = %v, want ErrInvalidInput", err)
	}

	raw = baseRawToken()
	raw.Name = ""
	if _, err := TokenAt(raw, nil, fixedNow()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: err = %v, want ErrInvalidInput", err)
	}
}

func TestTokenAt_CoreMapping(t *testing.T) {
	tok, err := TokenAt(baseRawToken(), nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}

	if tok.MintAddress != testMint {
		t.Errorf("mint = %q", tok.MintAddress)
	}
	if tok.Launch.Launchpad != domain.LaunchpadRaydium {
		t.Errorf("launchpad = %v, want raydium", tok.Launch.Launchpad)
	}
	if tok.Launch.Developer.Address != "dev1" {
		t.Errorf("developer = %q, want dev1", tok.Launch.Developer.Address)
	}
	if tok.Launch.Graduation != nil {
		t.Error("no launchpad curve data, graduation must be absent")
	}

	if tok.Market.Price.USD != 0.0002 {
		t.Errorf("price = %v", tok.Market.Price.USD)
	}
	if tok.Market.FDV != 200000 {
		t.Errorf("fdv = %v, want mcap", tok.Market.FDV)
	}
	if tok.Market.Pool.Dex != "raydium" {
		t.Errorf("pool dex = %q", tok.Market.Pool.Dex)
	}

	if !tok.Liquidity.Metrics.IsHealthy {
		t.Error("liquidity 50000 must be healthy")
	}
	// 50000 / 200000
	if tok.Liquidity.Metrics.LiquidityToMcapRatio != 0.25 {
		t.Errorf("liquidityToMcapRatio = %v, want 0.25", tok.Liquidity.Metrics.LiquidityToMcapRatio)
	}

	// 600/400
	if tok.Activity.Transactions.BuysVsSells != 1.5 {
		t.Errorf("buysVsSells = %v, want 1.5", tok.Activity.Transactions.BuysVsSells)
	}
	// 600/1000
	if tok.Activity.Pressure.BuyPressure != 0.6 {
		t.Errorf("buyPressure = %v, want 0.6", tok.Activity.Pressure.BuyPressure)
	}
	// 30000 * 0.6
	if tok.Activity.Pressure.BuyVolume24h != 18000 {
		t.Errorf("buyVolume24h = %v, want 18000", tok.Activity.Pressure.BuyVolume24h)
	}

	if !tok.Security.Authorities.MintDisabled || !tok.Security.Authorities.FreezeDisabled {
		t.Error("nil authorities must map to disabled")
	}
	if !tok.Security.LpBurn.IsFullyBurned {
		t.Error("lpBurn 100 must be fully burned")
	}

	if tok.System.Status != domain.TokenStatusActive {
		t.Errorf("status = %v, want active for unrecognized raw status", tok.System.Status)
	}
	if tok.System.FirstSeenAt.After(tok.System.LastUpdatedAt) {
		t.Error("firstSeenAt must not be after lastUpdatedAt")
	}
	if !tok.System.LastFullEnrichmentAt.Equal(fixedNow()) {
		t.Errorf("lastFullEnrichmentAt = %v, want fixed now", tok.System.LastFullEnrichmentAt)
	}
}

func TestTokenAt_ScoreConsistency(t *testing.T) {
	tok, err := TokenAt(baseRawToken(), nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}

	s := tok.Analytics.Scores
	if s.Liquidity != 60 { // 50000 on the ladder
		t.Errorf("liquidity score = %d, want 60", s.Liquidity)
	}
	if s.Holders != 60 { // 300 holders
		t.Errorf("holders score = %d, want 60", s.Holders)
	}
	if s.Volume != 60 { // 30000 USD
		t.Errorf("volume score = %d, want 60", s.Volume)
	}
	if s.Safety != 100 { // no red flags, LP fully burned
		t.Errorf("safety score = %d, want 100", s.Safety)
	}

	want := OverallScore(s.Liquidity, s.Safety, s.Volume, s.Holders)
	if s.Overall != want {
		t.Errorf("overall = %d, want composite %d", s.Overall, want)
	}
	// Quality reuses the same composite, never a second formula.
	if tok.Quality.Quality.OverallScore != s.Overall {
		t.Errorf("quality overall = %d, analytics overall = %d", tok.Quality.Quality.OverallScore, s.Overall)
	}

	for name, score := range map[string]int{
		"overall":   s.Overall,
		"liquidity": s.Liquidity,
		"holders":   s.Holders,
		"volume":    s.Volume,
		"safety":    s.Safety,
	} {
		if score < 0 || score > 100 {
			t.Errorf("%s score %d out of [0,100]", name, score)
		}
	}
}

func TestTokenAt_ZeroDenominators(t *testing.T) {
	raw := baseRawToken()
	raw.LiquidityUSD = 0
	raw.MarketCapUSD = 0
	raw.Holders = 0
	raw.Buys = 0
	raw.Sells = 0
	raw.TotalTransactions = 0
	raw.Volume24h = nil

	tok, err := TokenAt(raw, nil, fixedNow())
	if err != nil {
		t.Fatalf("zeroed token must normalize, got %v", err)
	}

	if tok.Liquidity.Metrics.LiquidityToMcapRatio != 0 {
		t.Errorf("ratio with mcap=0 is %v, want 0", tok.Liquidity.Metrics.LiquidityToMcapRatio)
	}
	if tok.Activity.Transactions.BuysVsSells != 1 {
		t.Errorf("buysVsSells with sells=0 is %v, want neutral 1", tok.Activity.Transactions.BuysVsSells)
	}
	if tok.Activity.Pressure.BuyPressure != 0 {
		t.Errorf("buyPressure with no txs is %v, want 0", tok.Activity.Pressure.BuyPressure)
	}
	if tok.Activity.Pressure.BuyVolume24h != 0 || tok.Activity.Pressure.SellVolume24h != 0 {
		t.Error("directional volume with no txs must be 0")
	}
	if tok.Holders.Distribution.Whales != 0 {
		t.Errorf("whales = %d, want 0", tok.Holders.Distribution.Whales)
	}
}

func TestTokenAt_SellsOnlyPressure(t *testing.T) {
	raw := baseRawToken()
	raw.Buys = 0
	raw.Sells = 10

	tok, err := TokenAt(raw, nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}

	if tok.Activity.Transactions.BuysVsSells != 0 {
		t.Errorf("buysVsSells = %v, want 0", tok.Activity.Transactions.BuysVsSells)
	}
	if tok.Activity.Pressure.SellVolume24h != 30000 {
		t.Errorf("sellVolume24h = %v, want full 24h volume", tok.Activity.Pressure.SellVolume24h)
	}
}

func TestTokenAt_Graduation(t *testing.T) {
	raw := baseRawToken()
	raw.Market = "pumpfun"
	raw.Status = "graduated"
	raw.Launchpad = &tracker.LaunchpadInfo{CurvePercentage: floatPtr(100)}

	tok, err := TokenAt(raw, nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}

	if tok.Launch.Launchpad != domain.LaunchpadPumpFun {
		t.Errorf("launchpad = %v, want pump.fun", tok.Launch.Launchpad)
	}
	if tok.Launch.Graduation == nil {
		t.Fatal("curve data present, graduation must be set")
	}
	if !tok.Launch.Graduation.HasGraduated {
		t.Error("status graduated must set HasGraduated")
	}
	if tok.Launch.Graduation.GraduatedAt == nil {
		t.Error("graduated token must carry GraduatedAt")
	}
	if tok.System.Status != domain.TokenStatusGraduated {
		t.Errorf("status = %v, want graduated", tok.System.Status)
	}
}

func TestTokenAt_DeveloperFallback(t *testing.T) {
	raw := baseRawToken()
	raw.Deployer = ""
	raw.TokenDetails = &tracker.TokenDetails{Creator: "creator1"}

	tok, err := TokenAt(raw, nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}
	if tok.Launch.Developer.Address != "creator1" {
		t.Errorf("developer = %q, want creator fallback", tok.Launch.Developer.Address)
	}

	raw.TokenDetails = nil
	tok, err = TokenAt(raw, nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}
	if tok.Launch.Developer.Address != "unknown" {
		t.Errorf("developer = %q, want unknown", tok.Launch.Developer.Address)
	}
}

func TestParseLaunchpad(t *testing.T) {
	cases := []struct {
		market string
		want   domain.Launchpad
	}{
		{"pumpfun", domain.LaunchpadPumpFun},
		{"PUMP.FUN AMM", domain.LaunchpadPumpFun},
		{"moonshot", domain.LaunchpadMoonshot},
		{"raydium", domain.LaunchpadRaydium},
		{"Raydium CPMM", domain.LaunchpadRaydium},
		{"meteora-dlmm", domain.LaunchpadMeteora},
		{"orca", domain.LaunchpadUnknown},
		{"", domain.LaunchpadUnknown},
	}

	for _, tc := range cases {
		if got := ParseLaunchpad(tc.market); got != tc.want {
			t.Errorf("ParseLaunchpad(%q) = %v, want %v", tc.market, got, tc.want)
		}
	}
}

func TestTokenAt_MetadataURLs(t *testing.T) {
	tok, err := TokenAt(baseRawToken(), nil, fixedNow())
	if err != nil {
		t.Fatalf("TokenAt: %v", err)
	}

	if tok.Metadata.URLs.Solscan != "https://solscan.io/token/"+testMint {
		t.Errorf("solscan url = %q", tok.Metadata.URLs.Solscan)
	}
	if tok.Metadata.URLs.Tracker == "" || tok.Metadata.URLs.Dexscreener == "" {
		t.Error("reference urls must be filled")
	}
}
