package marine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestScoreAllUnknownIsNeutral(t *testing.T) {
	// Wave and wind resolve to the 0.5 midpoint; the missing period
	// defaults to 8 s, not to a midpoint.
	assert.Equal(t, 48, Score(Snapshot{}))
}

func TestScoreCalmConditions(t *testing.T) {
	got := Score(Snapshot{HsM: f(1.0), WindKt: f(10), SwellPeriodS: f(12)})
	assert.Equal(t, 100, got)
}

func TestScoreNoGoConditions(t *testing.T) {
	got := Score(Snapshot{HsM: f(3.0), WindKt: f(30), SwellPeriodS: f(6)})
	assert.Equal(t, 0, got)
}

func TestScoreInterpolatesWaveHeight(t *testing.T) {
	// Hs 2.0 m sits halfway between the 1.5 caution and 2.5 no-go marks.
	got := Score(Snapshot{HsM: f(2.0), WindKt: f(10), SwellPeriodS: f(12)})
	assert.Equal(t, 75, got)
}

func TestScoreDefaultPeriodApplied(t *testing.T) {
	// Hs 1.2, wind 15.4, no period: both primary terms are full, the
	// defaulted 8 s period contributes a third of its weight.
	got := Score(Snapshot{HsM: f(1.2), WindKt: f(15.4)})
	assert.Equal(t, 90, got)
}

func TestScoreIsTotal(t *testing.T) {
	snapshots := []Snapshot{
		{},
		{HsM: f(math.NaN()), WindKt: f(math.Inf(1)), SwellPeriodS: f(math.Inf(-1))},
		{HsM: f(-5), WindKt: f(-1), SwellPeriodS: f(0)},
		{HsM: f(1e9), WindKt: f(1e9), SwellPeriodS: f(1e9)},
	}
	for _, snap := range snapshots {
		got := Score(snap)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestScoreMonotonicInWaveHeight(t *testing.T) {
	prev := math.MaxInt
	for hs := 0.0; hs <= 4.0; hs += 0.25 {
		got := Score(Snapshot{HsM: f(hs), WindKt: f(15), SwellPeriodS: f(9)})
		assert.LessOrEqual(t, got, prev, "score rose when Hs increased to %.2f", hs)
		prev = got
	}
}

func TestScoreMonotonicInWind(t *testing.T) {
	prev := math.MaxInt
	for wind := 0.0; wind <= 40.0; wind += 2.0 {
		got := Score(Snapshot{HsM: f(1.0), WindKt: f(wind), SwellPeriodS: f(9)})
		assert.LessOrEqual(t, got, prev, "score rose when wind increased to %.2f", wind)
		prev = got
	}
}

func TestScoreFromVoyageConvertsUnits(t *testing.T) {
	want := Score(Snapshot{HsM: f(5 * FeetToMeters), WindKt: f(20), SwellPeriodS: f(DefaultSwellPeriodS)})
	assert.Equal(t, want, ScoreFromVoyage(f(5), f(20)))
}

func TestScoreFromVoyageRoughForecast(t *testing.T) {
	// 10 ft swell converts past the no-go wave mark; 30 kt is past the
	// no-go wind mark. Only the assumed period contributes.
	assert.Equal(t, 5, ScoreFromVoyage(f(10), f(30)))
}

func TestScoreFromVoyageMissingFigures(t *testing.T) {
	got := ScoreFromVoyage(nil, nil)
	assert.Equal(t, 48, got)
}
