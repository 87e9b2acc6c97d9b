package normalize

import (
	"testing"

	"tokenradar/internal/tracker"
)

func floatPtr(v float64) *float64 { return &v }

func TestScoreLiquidity_Ladder(t *testing.T) {
	cases := []struct {
		liquidity float64
		want      int
	}{
		{150000, 100},
		{100000, 80}, // breakpoints are strict
		{60000, 80},
		{25000, 60},
		{15000, 40},
		{7000, 20},
		{5000, 10},
		{0, 10},
	}

	for _, tc := range cases {
		if got := ScoreLiquidity(tc.liquidity); got != tc.want {
			t.Errorf("ScoreLiquidity(%v) = %d, want %d", tc.liquidity, got, tc.want)
		}
	}
}

func TestScoreHolders_Ladder(t *testing.T) {
	cases := []struct {
		holders int
		want    int
	}{
		{2000, 100},
		{700, 80},
		{300, 60},
		{150, 40},
		{60, 20},
		{50, 10},
		{0, 10},
	}

	for _, tc := range cases {
		if got := ScoreHolders(tc.holders); got != tc.want {
			t.Errorf("ScoreHolders(%d) = %d, want %d", tc.holders, got, tc.want)
		}
	}
}

func TestScoreVolume_NilIsZero(t *testing.T) {
	if got := ScoreVolume(nil); got != 10 {
		t.Errorf("ScoreVolume(nil) = %d, want 10", got)
	}
	if got := ScoreVolume(floatPtr(200000)); got != 100 {
		t.Errorf("ScoreVolume(200000) = %d, want 100", got)
	}
	if got := ScoreVolume(floatPtr(12000)); got != 40 {
		t.Errorf("ScoreVolume(12000) = %d, want 40", got)
	}
}

func TestScoreSafety_Penalties(t *testing.T) {
	clean := tracker.Token{LpBurn: 100}
	if got := ScoreSafety(clean); got != 100 {
		t.Errorf("clean token safety = %d, want 100", got)
	}

	// mint -30, freeze -20, dev -20, top10 -15, lpBurn -15 = 0
	worst := tracker.Token{
		MintAuthority:   strPtr("a"),
		FreezeAuthority: strPtr("b"),
		Dev:             30,
		Top10:           60,
		LpBurn:          50,
	}
	if got := ScoreSafety(worst); got != 0 {
		t.Errorf("worst token safety = %d, want 0 (floored)", got)
	}

	// Only LP not fully burned: 100 - 15 = 85.
	partial := tracker.Token{LpBurn: 99}
	if got := ScoreSafety(partial); got != 85 {
		t.Errorf("partial burn safety = %d, want 85", got)
	}
}

func TestOverallScore_WeightedComposite(t *testing.T) {
	// 0.30*100 + 0.25*100 + 0.25*100 + 0.20*100 = 100
	if got := OverallScore(100, 100, 100, 100); got != 100 {
		t.Errorf("all-100 composite = %d, want 100", got)
	}
	// 0.30*10 + 0.25*0 + 0.25*10 + 0.20*10 = 7.5 → 8
	if got := OverallScore(10, 0, 10, 10); got != 8 {
		t.Errorf("low composite = %d, want 8", got)
	}
	if got := OverallScore(0, 0, 0, 0); got != 0 {
		t.Errorf("zero composite = %d, want 0", got)
	}
}

func TestOverallScore_Bounds(t *testing.T) {
	for _, liq := range []int{0, 10, 50, 100} {
		for _, safety := range []int{0, 50, 100} {
			for _, vol := range []int{0, 50, 100} {
				for _, holders := range []int{0, 50, 100} {
					got := OverallScore(liq, safety, vol, holders)
					if got < 0 || got > 100 {
						t.Fatalf("OverallScore(%d,%d,%d,%d) = %d out of [0,100]", liq, safety, vol, holders, got)
					}
				}
			}
		}
	}
}
