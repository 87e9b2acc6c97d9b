package tracker

import "context"

// Client defines the analytics provider Data API interface consumed by the
// collector. Implementations fetch raw records only; all normalization and
// scoring happens downstream.
type Client interface {
	// SearchTokens retrieves a page of raw token records matching params.
	SearchTokens(ctx context.Context, params SearchParams) ([]Token, error)

	// TokenRisk retrieves the risk assessment for a mint.
	TokenRisk(ctx context.Context, mint string) (*RiskData, error)

	// TopTraders retrieves a page of top trader summaries across all tokens.
	TopTraders(ctx context.Context, page int) ([]TopTrader, error)

	// WalletPnL retrieves the per-token PnL breakdown for a wallet.
	WalletPnL(ctx context.Context, address string) (*WalletPnL, error)

	// Wallet retrieves the current portfolio snapshot for a wallet.
	Wallet(ctx context.Context, address string) (*WalletInfo, error)
}
