// Package affect maps points on the circumplex plane to emotion labels.
package affect

import "math"

// Position is a screen-normalized point. X grows to the right and Y grows downwards.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Center is where the marker rests when nothing is selected.
var Center = Position{X: 0.5, Y: 0.5}

// ValenceArousal is a point in [-1,1]x[-1,1] affect space.
type ValenceArousal struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// Clamp bounds both coordinates to [0,1].
func (p Position) Clamp() Position {
	return Position{X: clampUnit(p.X), Y: clampUnit(p.Y)}
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0.5
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// ToValenceArousal converts a position to valence/arousal rounded to two decimals.
// The vertical axis is inverted so the top of the plane is high arousal.
func ToValenceArousal(p Position) ValenceArousal {
	return ValenceArousal{
		Valence: round2(p.X*2 - 1),
		Arousal: round2(-(p.Y*2 - 1)),
	}
}

// FromValenceArousal is the inverse of ToValenceArousal.
func FromValenceArousal(va ValenceArousal) Position {
	return Position{
		X: (va.Valence + 1) / 2,
		Y: (1 - va.Arousal) / 2,
	}
}

// Distance is the Euclidean distance between two positions.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	// -0 would otherwise leak into JSON as "-0"
	return r + 0
}
