package domain

// Clone returns a deep copy of the token. Stores hand out clones so callers
// can never mutate shared state.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := *t

	if t.Launch.Graduation != nil {
		g := *t.Launch.Graduation
		if g.GraduatedAt != nil {
			at := *g.GraduatedAt
			g.GraduatedAt = &at
		}
		c.Launch.Graduation = &g
	}
	if t.Activity.Fees != nil {
		f := *t.Activity.Fees
		c.Activity.Fees = &f
	}
	c.Security.Authorities.MintAuthority = cloneStringPtr(t.Security.Authorities.MintAuthority)
	c.Security.Authorities.FreezeAuthority = cloneStringPtr(t.Security.Authorities.FreezeAuthority)
	if t.Quality.OrganicScore != nil {
		v := *t.Quality.OrganicScore
		c.Quality.OrganicScore = &v
	}

	c.Risk.Warnings = cloneStrings(t.Risk.Warnings)
	c.Risk.Dangers = cloneStrings(t.Risk.Dangers)
	c.Risk.LiquidityIssues = cloneStrings(t.Risk.LiquidityIssues)
	c.Risk.InsiderRisks = cloneStrings(t.Risk.InsiderRisks)
	c.Holders.SmartMoney.TopSmartWallets = cloneStrings(t.Holders.SmartMoney.TopSmartWallets)
	c.Analytics.Patterns.SimilarToTokens = cloneStrings(t.Analytics.Patterns.SimilarToTokens)
	c.Metadata.Tags = cloneStrings(t.Metadata.Tags)
	c.System.DataSources = cloneStrings(t.System.DataSources)

	return &c
}

// Clone returns a deep copy of the wallet.
func (w *Wallet) Clone() *Wallet {
	if w == nil {
		return nil
	}
	c := *w

	if w.Classification.Reputation.Rank != nil {
		r := *w.Classification.Reputation.Rank
		c.Classification.Reputation.Rank = &r
	}

	c.Behavior.Patterns.CopiesWallets = cloneStrings(w.Behavior.Patterns.CopiesWallets)
	c.Behavior.Patterns.CopiedBy = cloneStrings(w.Behavior.Patterns.CopiedBy)
	c.System.Tags = cloneStrings(w.System.Tags)

	if w.Portfolio.TopHoldings != nil {
		c.Portfolio.TopHoldings = make([]PortfolioHolding, len(w.Portfolio.TopHoldings))
		copy(c.Portfolio.TopHoldings, w.Portfolio.TopHoldings)
	}
	if w.History.SuccessfulTokens != nil {
		c.History.SuccessfulTokens = make([]SuccessfulToken, len(w.History.SuccessfulTokens))
		for i, st := range w.History.SuccessfulTokens {
			if st.ExitDate != nil {
				at := *st.ExitDate
				st.ExitDate = &at
			}
			c.History.SuccessfulTokens[i] = st
		}
	}
	if w.History.FailedTokens != nil {
		c.History.FailedTokens = make([]FailedToken, len(w.History.FailedTokens))
		copy(c.History.FailedTokens, w.History.FailedTokens)
	}

	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
