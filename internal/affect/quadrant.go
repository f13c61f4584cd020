package affect

// Quadrant is one of the four sign combinations of valence and arousal.
type Quadrant string

const (
	QuadrantPositiveActive   Quadrant = "Positive Active"
	QuadrantNegativeActive   Quadrant = "Negative Active"
	QuadrantNegativeInactive Quadrant = "Negative Inactive"
	QuadrantPositiveInactive Quadrant = "Positive Inactive"
)

// Quadrants lists every quadrant in display order.
var Quadrants = []Quadrant{
	QuadrantPositiveActive,
	QuadrantNegativeActive,
	QuadrantNegativeInactive,
	QuadrantPositiveInactive,
}

// QuadrantOf uses the raw sign of valence and arousal. Zero counts as positive.
func QuadrantOf(valence, arousal float64) Quadrant {
	switch {
	case valence >= 0 && arousal >= 0:
		return QuadrantPositiveActive
	case valence < 0 && arousal >= 0:
		return QuadrantNegativeActive
	case valence < 0 && arousal < 0:
		return QuadrantNegativeInactive
	default:
		return QuadrantPositiveInactive
	}
}

// Fallback is the coarse label used when no domain matches.
func (q Quadrant) Fallback() Emotion {
	switch q {
	case QuadrantPositiveActive:
		return Emotion{Label: "Content", Emoji: "🙂"}
	case QuadrantNegativeActive:
		return Emotion{Label: "Upset", Emoji: "😟"}
	case QuadrantNegativeInactive:
		return Emotion{Label: "Sad", Emoji: "😢"}
	default:
		return Emotion{Label: "Calm", Emoji: "😇"}
	}
}

// Emoji is the representative emoji shown next to quadrant statistics.
func (q Quadrant) Emoji() string {
	switch q {
	case QuadrantPositiveActive:
		return "🤩"
	case QuadrantNegativeActive:
		return "😠"
	case QuadrantNegativeInactive:
		return "😢"
	default:
		return "😌"
	}
}
