package stub

import (
	"context"
	"errors"

	"tokenradar/internal/tracker"
)

// ErrNotFound is returned when a requested record is not in the stub store.
var ErrNotFound = errors.New("not found")

// Client implements tracker.Client for testing and fixture runs.
type Client struct {
	Tokens     []tracker.Token
	Risk       map[string]*tracker.RiskData
	Traders    []tracker.TopTrader
	PnL        map[string]*tracker.WalletPnL
	Portfolios map[string]*tracker.WalletInfo
}

// NewClient creates a new stub client.
func NewClient() *Client {
	return &Client{
		Risk:       make(map[string]*tracker.RiskData),
		PnL:        make(map[string]*tracker.WalletPnL),
		Portfolios: make(map[string]*tracker.WalletInfo),
	}
}

// Compile-time interface check.
var _ tracker.Client = (*Client)(nil)

// SearchTokens returns all stub tokens regardless of params.
func (c *Client) SearchTokens(_ context.Context, _ tracker.SearchParams) ([]tracker.Token, error) {
	return c.Tokens, nil
}

// TokenRisk retrieves a risk assessment from the stub store.
func (c *Client) TokenRisk(_ context.Context, mint string) (*tracker.RiskData, error) {
	risk, ok := c.Risk[mint]
	if !ok {
		return nil, ErrNotFound
	}
	return risk, nil
}

// TopTraders returns all stub traders; pages beyond the first are empty.
func (c *Client) TopTraders(_ context.Context, page int) ([]tracker.TopTrader, error) {
	if page > 1 {
		return nil, nil
	}
	return c.Traders, nil
}

// WalletPnL retrieves a PnL breakdown from the stub store.
func (c *Client) WalletPnL(_ context.Context, address string) (*tracker.WalletPnL, error) {
	pnl, ok := c.PnL[address]
	if !ok {
		return nil, ErrNotFound
	}
	return pnl, nil
}

// Wallet retrieves a portfolio snapshot from the stub store.
func (c *Client) Wallet(_ context.Context, address string) (*tracker.WalletInfo, error) {
	info, ok := c.Portfolios[address]
	if !ok {
		return nil, ErrNotFound
	}
	return info, nil
}
