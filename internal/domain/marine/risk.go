// internal/domain/marine/risk.go
package marine

import "math"

// Scoring thresholds. Conditions at or below the caution value score a full
// sub-score; at or above the no-go value they score zero.
const (
	waveCautionM = 1.5
	waveNoGoM    = 2.5

	windCautionKt = 18.0
	windNoGoKt    = 28.0

	swellPeriodMinS = 6.0
	swellPeriodMaxS = 12.0

	weightWave  = 0.50
	weightWind  = 0.35
	weightSwell = 0.15
)

// DefaultSwellPeriodS is the assumed swell period when none is reported.
// A typical open-water value; tunable, not derived from any measurement.
const DefaultSwellPeriodS = 8.0

// FeetToMeters converts schedule swell figures (reported in feet) to meters.
const FeetToMeters = 0.3048

// Score converts a snapshot into the operability index (IOI), an integer in
// [0,100]. It is pure and total: unknown or invalid measurements resolve to
// a neutral midpoint instead of failing, so a missing sensor can never sink
// a report on its own.
func Score(snap Snapshot) int {
	wave := 0.5
	if v := snap.HsM; v != nil && isFinite(*v) {
		wave = rampDown(*v, waveCautionM, waveNoGoM)
	}

	wind := 0.5
	if v := snap.WindKt; v != nil && isFinite(*v) {
		wind = rampDown(*v, windCautionKt, windNoGoKt)
	}

	// Shorter periods mean steeper, rougher seas: the sub-score rises
	// linearly from 0 at 6 s to 1 at 12 s.
	period := DefaultSwellPeriodS
	if v := snap.SwellPeriodS; v != nil && isFinite(*v) {
		period = *v
	}
	if period < swellPeriodMinS {
		period = swellPeriodMinS
	}
	if period > swellPeriodMaxS {
		period = swellPeriodMaxS
	}
	swell := (period - swellPeriodMinS) / (swellPeriodMaxS - swellPeriodMinS)

	raw := weightWave*wave + weightWind*wind + weightSwell*swell
	score := int(math.Round(raw * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScoreFromVoyage derives the index from a scheduled-voyage forecast, which
// reports swell height in feet and carries no swell period. The figures are
// converted to snapshot units and the assumed default period is applied
// before delegating to Score.
func ScoreFromVoyage(swellFt, windKt *float64) int {
	snap := Snapshot{WindKt: windKt}
	if swellFt != nil && isFinite(*swellFt) {
		hs := *swellFt * FeetToMeters
		snap.HsM = &hs
	}
	period := DefaultSwellPeriodS
	snap.SwellPeriodS = &period
	return Score(snap)
}

// rampDown maps value to 1 at or below caution, 0 at or above noGo, linear
// in between.
func rampDown(value, caution, noGo float64) float64 {
	if value <= caution {
		return 1
	}
	if value >= noGo {
		return 0
	}
	return (noGo - value) / (noGo - caution)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
