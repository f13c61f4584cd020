package affect

// Reading is everything the classifier says about one point.
type Reading struct {
	Position    Position `json:"position" yaml:"position"`
	Valence     float64  `json:"valence" yaml:"valence"`
	Arousal     float64  `json:"arousal" yaml:"arousal"`
	Emotion     Emotion  `json:"emotion" yaml:"emotion"`
	Quadrant    Quadrant `json:"quadrant" yaml:"quadrant"`
	Description string   `json:"description" yaml:"description"`
}

// Read classifies a screen position. The position is clamped first.
func Read(p Position) Reading {
	p = p.Clamp()
	va := ToValenceArousal(p)
	return Reading{
		Position:    p,
		Valence:     va.Valence,
		Arousal:     va.Arousal,
		Emotion:     Classify(va.Valence, va.Arousal),
		Quadrant:    QuadrantOf(va.Valence, va.Arousal),
		Description: Describe(va.Valence, va.Arousal),
	}
}

// ReadValenceArousal classifies a point given in affect space.
func ReadValenceArousal(valence, arousal float64) Reading {
	return Read(FromValenceArousal(ValenceArousal{Valence: valence, Arousal: arousal}))
}
