package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tokenradar/internal/domain"
	"tokenradar/internal/idhash"
	"tokenradar/internal/tracker"
)

const dataSourceName = "solanatracker"

// Token normalizes one raw provider token record, optionally enriched with
// a risk assessment, into the canonical Token entity.
func Token(raw tracker.Token, risk *tracker.RiskData) (*domain.Token, error) {
	return TokenAt(raw, risk, time.Now())
}

// TokenAt is Token with an explicit timestamp for the bookkeeping fields
// that record when normalization happened.
func TokenAt(raw tracker.Token, risk *tracker.RiskData, now time.Time) (*domain.Token, error) {
	if err := idhash.ValidateAddress(raw.Mint); err != nil {
		return nil, fmt.Errorf("%w: mint: %v", ErrInvalidInput, err)
	}
	if raw.Symbol == "" || raw.Name == "" {
		return nil, fmt.Errorf("%w: token %s missing symbol or name", ErrInvalidInput, raw.Mint)
	}

	// Component scores are computed once and shared by the quality and
	// analytics sub-records so the two never diverge.
	scores := analyticsScores(raw)

	return &domain.Token{
		MintAddress: raw.Mint,
		Symbol:      raw.Symbol,
		Name:        raw.Name,
		Decimals:    raw.Decimals,

		Launch:    buildLaunch(raw, now),
		Market:    buildMarket(raw),
		Liquidity: buildLiquidity(raw),
		Holders:   buildHolders(raw),
		Activity:  buildActivity(raw),
		Security:  buildSecurity(raw),
		Risk:      buildRisk(raw, risk),
		Quality:   buildQuality(raw, scores.Overall),
		Analytics: domain.TokenAnalytics{
			Scores: scores,
			Patterns: domain.PatternMatch{
				MatchesSuccessPattern: false,
				SimilarToTokens:       []string{},
				ConfidenceScore:       0,
			},
		},
		Metadata: buildMetadata(raw),
		System:   buildSystemInfo(raw, now),
	}, nil
}

// ParseLaunchpad maps the provider's market string to a launchpad venue by
// case-insensitive substring match. First match wins; no match is Unknown.
func ParseLaunchpad(market string) domain.Launchpad {
	lower := strings.ToLower(market)
	switch {
	case strings.Contains(lower, "pump"):
		return domain.LaunchpadPumpFun
	case strings.Contains(lower, "moon"):
		return domain.LaunchpadMoonshot
	case strings.Contains(lower, "raydium"):
		return domain.LaunchpadRaydium
	case strings.Contains(lower, "meteora"):
		return domain.LaunchpadMeteora
	default:
		return domain.LaunchpadUnknown
	}
}

// ParseTokenStatus maps the provider's status string to a lifecycle status.
// Anything unrecognized is an ordinary active token.
func ParseTokenStatus(status string) domain.TokenStatus {
	switch status {
	case "graduating":
		return domain.TokenStatusGraduating
	case "graduated":
		return domain.TokenStatusGraduated
	default:
		return domain.TokenStatusActive
	}
}

func buildLaunch(raw tracker.Token, now time.Time) domain.TokenLaunch {
	createdAt := time.UnixMilli(raw.CreatedAt).UTC()

	developer := raw.Deployer
	if developer == "" && raw.TokenDetails != nil {
		developer = raw.TokenDetails.Creator
	}
	if developer == "" {
		developer = "unknown"
	}

	var graduation *domain.TokenGraduation
	if raw.Launchpad != nil && raw.Launchpad.CurvePercentage != nil {
		graduated := raw.Status == "graduated"
		g := &domain.TokenGraduation{
			HasGraduated:           graduated,
			BondingCurvePercentage: *raw.Launchpad.CurvePercentage,
		}
		if graduated {
			at := now.UTC()
			g.GraduatedAt = &at
		}
		graduation = g
	}

	return domain.TokenLaunch{
		Launchpad:          ParseLaunchpad(raw.Market),
		CreatedAt:          createdAt,
		FirstPoolCreatedAt: createdAt,
		Developer: domain.TokenDeveloper{
			Address:    developer,
			IsVerified: raw.Verified,
		},
		Initial: domain.TokenInitialState{
			Mcap:        raw.MarketCapUSD,
			Liquidity:   raw.LiquidityUSD,
			HolderCount: raw.Holders,
			Price:       raw.PriceUSD,
		},
		Graduation: graduation,
	}
}

func buildMarket(raw tracker.Token) domain.TokenMarket {
	lastUpdated := time.UnixMilli(raw.LastUpdated).UTC()

	return domain.TokenMarket{
		Price: domain.TokenPrice{
			USD:         raw.PriceUSD,
			LastUpdated: lastUpdated,
			Source:      dataSourceName,
		},
		MarketCap: raw.MarketCapUSD,
		// The provider reports only circulating mcap; FDV is assumed equal
		// until supply data says otherwise.
		FDV: raw.MarketCapUSD,
		PriceChange: domain.TokenPriceChange{
			M5:  derefOrZero(raw.PriceChange5m),
			H1:  derefOrZero(raw.PriceChange1h),
			H6:  derefOrZero(raw.PriceChange6h),
			H24: derefOrZero(raw.PriceChange24h),
		},
		// Peak tracking starts from the current snapshot; the storage layer
		// ratchets it upward across updates.
		Peak: domain.TokenPeak{
			Price:                raw.PriceUSD,
			PriceAt:              lastUpdated,
			Mcap:                 raw.MarketCapUSD,
			McapAt:               lastUpdated,
			MultiplierFromLaunch: 1,
		},
		Pool: domain.TokenPool{
			Address:    raw.PoolAddress,
			Dex:        raw.Market,
			QuoteToken: raw.QuoteToken,
		},
	}
}

func buildLiquidity(raw tracker.Token) domain.TokenLiquidity {
	return domain.TokenLiquidity{
		Total:            raw.LiquidityUSD,
		TotalUSD:         raw.LiquidityUSD,
		LpBurnPercentage: raw.LpBurn,
		Metrics: domain.TokenLiquidityMetrics{
			IsHealthy:            raw.LiquidityUSD >= 10000,
			LiquidityToMcapRatio: ratioOr(raw.LiquidityUSD, raw.MarketCapUSD, 0),
			DominantDex:          raw.Market,
		},
	}
}

func buildHolders(raw tracker.Token) domain.TokenHolders {
	return domain.TokenHolders{
		Total: raw.Holders,
		Concentration: domain.HolderConcentration{
			Top10Percentage:    raw.Top10,
			DevPercentage:      raw.Dev,
			InsidersPercentage: raw.Insiders,
			SnipersPercentage:  raw.Snipers,
		},
		Distribution: domain.HolderDistribution{
			Whales:        int(math.Floor(float64(raw.Holders) * raw.Top10 / 100)),
			MediumHolders: int(math.Floor(float64(raw.Holders) * 0.1)),
			SmallHolders:  int(math.Floor(float64(raw.Holders) * 0.8)),
		},
		// Smart money presence is filled in by the collector once wallets
		// holding the token have been tiered.
		SmartMoney: domain.SmartMoneyPresence{
			Count:           0,
			TopSmartWallets: []string{},
			AvgWalletScore:  0,
			TotalPercentage: 0,
			RecentActivity:  "holding",
		},
	}
}

func buildActivity(raw tracker.Token) domain.TokenActivity {
	volume24h := derefOrZero(raw.Volume24h)
	totalTx := float64(raw.Buys + raw.Sells)

	// buyPressure is the buy share of transactions; with no transactions at
	// all there is no pressure either way, so everything derived from it
	// stays at zero.
	buyPressure := ratioOr(float64(raw.Buys), totalTx, 0)
	sellShare := ratioOr(float64(raw.Sells), totalTx, 0)

	var fees *domain.FeeBreakdown
	if raw.Fees != nil {
		fees = &domain.FeeBreakdown{
			TotalFees:    raw.Fees.Total,
			TradingFees:  raw.Fees.TotalTrading,
			PriorityFees: raw.Fees.TotalTips,
		}
	}

	return domain.TokenActivity{
		Volume: domain.VolumeBreakdown{
			M5:  derefOrZero(raw.Volume5m),
			H1:  derefOrZero(raw.Volume1h),
			H6:  derefOrZero(raw.Volume6h),
			H24: volume24h,
		},
		Transactions: domain.TransactionCounts{
			Total: raw.TotalTransactions,
			Buys:  raw.Buys,
			Sells: raw.Sells,
			// With no sells the ratio is neutral, not infinite.
			BuysVsSells: ratioOr(float64(raw.Buys), float64(raw.Sells), 1),
		},
		Pressure: domain.BuySellPressure{
			BuyVolume24h:  volume24h * buyPressure,
			SellVolume24h: volume24h * sellShare,
			BuyPressure:   buyPressure,
		},
		Fees: fees,
	}
}

func buildSecurity(raw tracker.Token) domain.TokenSecurity {
	return domain.TokenSecurity{
		Authorities: domain.TokenAuthorities{
			MintDisabled:    raw.MintAuthority == nil,
			FreezeDisabled:  raw.FreezeAuthority == nil,
			MintAuthority:   raw.MintAuthority,
			FreezeAuthority: raw.FreezeAuthority,
		},
		LpBurn: domain.LpBurnDetail{
			Percentage:    raw.LpBurn,
			IsFullyBurned: raw.LpBurn == 100,
		},
		Verification: domain.TokenVerification{
			IsVerified:      raw.Verified,
			ListedOnJupiter: raw.Jupiter,
			HasMetadata:     raw.Image != "",
		},
	}
}

func buildQuality(raw tracker.Token, overall int) domain.TokenQuality {
	marketQuality := 40
	if raw.LiquidityUSD > 10000 {
		marketQuality = 70
	}
	communityQuality := 20
	if raw.HasSocials {
		communityQuality = 60
	}

	return domain.TokenQuality{
		// The provider has no organic-volume attribution.
		OrganicScore: nil,
		Quality: domain.QualityScore{
			OverallScore:     overall,
			DataQuality:      80,
			MarketQuality:    marketQuality,
			CommunityQuality: communityQuality,
			SocialPresence:   communityQuality,
		},
	}
}

func analyticsScores(raw tracker.Token) domain.AnalyticsScores {
	liquidity := ScoreLiquidity(raw.LiquidityUSD)
	holders := ScoreHolders(raw.Holders)
	volume := ScoreVolume(raw.Volume24h)
	safety := ScoreSafety(raw)

	return domain.AnalyticsScores{
		Overall:   OverallScore(liquidity, safety, volume, holders),
		Liquidity: liquidity,
		Holders:   holders,
		Volume:    volume,
		Safety:    safety,
		// Smart money needs wallet data, momentum needs price history; both
		// are filled in by the collector in later passes.
		SmartMoney: 0,
		Momentum:   0,
	}
}

func buildMetadata(raw tracker.Token) domain.TokenMetadata {
	social := domain.SocialLinks{}
	if raw.Socials != nil {
		social = domain.SocialLinks{
			Twitter:  raw.Socials.Twitter,
			Telegram: raw.Socials.Telegram,
			Discord:  raw.Socials.Discord,
			Website:  raw.Socials.Website,
		}
	}

	return domain.TokenMetadata{
		Image:  raw.Image,
		Social: social,
		Tags:   []string{},
		URLs: domain.ExternalURLs{
			Tracker:     "https://solanatracker.io/token/" + raw.Mint,
			Solscan:     "https://solscan.io/token/" + raw.Mint,
			Dexscreener: "https://dexscreener.com/solana/" + raw.Mint,
		},
	}
}

func buildSystemInfo(raw tracker.Token, now time.Time) domain.TokenSystemInfo {
	firstSeen := time.UnixMilli(raw.CreatedAt).UTC()
	lastUpdated := time.UnixMilli(raw.LastUpdated).UTC()
	if lastUpdated.Before(firstSeen) {
		lastUpdated = firstSeen
	}

	return domain.TokenSystemInfo{
		FirstSeenAt:   firstSeen,
		DiscoveredVia: dataSourceName,

		LastUpdatedAt:        lastUpdated,
		LastFullEnrichmentAt: now.UTC(),
		UpdateCount:          1,

		DataCompleteness: 85,
		DataSources:      []string{dataSourceName},
		Status:           ParseTokenStatus(raw.Status),
		IsActive:         true,
		IsMonitored:      false,
		Priority:         "medium",

		SnapshotCount: 0,
	}
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
