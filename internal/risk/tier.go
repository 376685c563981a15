package risk

// Tier buckets a clamped risk score into an ordered severity level.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierCritical
)

// Tier thresholds over the clamped [0,100] score.
const (
	criticalThreshold = 90
	highThreshold     = 70
	mediumThreshold   = 40
)

// TierFor maps a clamped score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= criticalThreshold:
		return TierCritical
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "Critical"
	case TierHigh:
		return "High Risk"
	case TierMedium:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}

// Level exposes the tier's ordinal for monotonicity comparisons.
func (t Tier) Level() int { return int(t) }
