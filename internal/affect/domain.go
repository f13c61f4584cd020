package affect

// Emotion is a classified label with its display emoji.
type Emotion struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// Domain is a rectangular region of the plane mapped to an emotion.
// Ranges are expressed in the non-inverted 0-1 space: ArousalRange 0 is the
// top edge of the plane, i.e. the highest arousal.
type Domain struct {
	Label        string     `json:"label"`
	Emoji        string     `json:"emoji"`
	ValenceRange [2]float64 `json:"valenceRange"`
	ArousalRange [2]float64 `json:"arousalRange"`
	Intensity    int        `json:"intensity"`
}

// Emotion returns the label and emoji of the domain.
func (d Domain) Emotion() Emotion {
	return Emotion{Label: d.Label, Emoji: d.Emoji}
}

func (d Domain) contains(nv, na float64) bool {
	return nv >= d.ValenceRange[0] && nv <= d.ValenceRange[1] &&
		na >= d.ArousalRange[0] && na <= d.ArousalRange[1]
}

// Domains overlap. Lookup is first match in this order, so reordering
// changes how existing logs would be classified.
var domains = []Domain{
	// positive valence, high arousal
	{Label: "Excited", Emoji: "🤩", ValenceRange: [2]float64{0.7, 1}, ArousalRange: [2]float64{0, 0.3}, Intensity: 3},
	{Label: "Happy", Emoji: "😄", ValenceRange: [2]float64{0.6, 0.85}, ArousalRange: [2]float64{0.15, 0.4}, Intensity: 2},
	{Label: "Cheerful", Emoji: "😊", ValenceRange: [2]float64{0.55, 0.75}, ArousalRange: [2]float64{0.25, 0.45}, Intensity: 1},
	{Label: "Content", Emoji: "🙂", ValenceRange: [2]float64{0.5, 0.65}, ArousalRange: [2]float64{0.35, 0.5}, Intensity: 1},

	// negative valence, high arousal
	{Label: "Angry", Emoji: "😠", ValenceRange: [2]float64{0, 0.3}, ArousalRange: [2]float64{0, 0.3}, Intensity: 3},
	{Label: "Tense", Emoji: "😤", ValenceRange: [2]float64{0.15, 0.4}, ArousalRange: [2]float64{0.15, 0.4}, Intensity: 2},
	{Label: "Nervous", Emoji: "😰", ValenceRange: [2]float64{0.25, 0.45}, ArousalRange: [2]float64{0.25, 0.45}, Intensity: 1},
	{Label: "Upset", Emoji: "😟", ValenceRange: [2]float64{0.35, 0.5}, ArousalRange: [2]float64{0.35, 0.5}, Intensity: 1},

	// negative valence, low arousal
	{Label: "Sad", Emoji: "😢", ValenceRange: [2]float64{0, 0.3}, ArousalRange: [2]float64{0.7, 1}, Intensity: 3},
	{Label: "Depressed", Emoji: "😔", ValenceRange: [2]float64{0.15, 0.4}, ArousalRange: [2]float64{0.6, 0.85}, Intensity: 2},
	{Label: "Bored", Emoji: "😒", ValenceRange: [2]float64{0.25, 0.45}, ArousalRange: [2]float64{0.55, 0.75}, Intensity: 1},
	{Label: "Fatigued", Emoji: "😪", ValenceRange: [2]float64{0.35, 0.5}, ArousalRange: [2]float64{0.5, 0.65}, Intensity: 1},

	// positive valence, low arousal
	{Label: "Relaxed", Emoji: "😌", ValenceRange: [2]float64{0.7, 1}, ArousalRange: [2]float64{0.7, 1}, Intensity: 3},
	{Label: "Calm", Emoji: "😇", ValenceRange: [2]float64{0.6, 0.85}, ArousalRange: [2]float64{0.6, 0.85}, Intensity: 2},
	{Label: "Serene", Emoji: "🧘", ValenceRange: [2]float64{0.55, 0.75}, ArousalRange: [2]float64{0.55, 0.75}, Intensity: 1},
	{Label: "At ease", Emoji: "😎", ValenceRange: [2]float64{0.5, 0.65}, ArousalRange: [2]float64{0.5, 0.65}, Intensity: 1},

	{Label: "Neutral", Emoji: "😐", ValenceRange: [2]float64{0.4, 0.6}, ArousalRange: [2]float64{0.4, 0.6}, Intensity: 1},
}

// Domains returns a copy of the domain table in lookup order.
func Domains() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// LookupDomain returns the first domain containing the renormalized point.
func LookupDomain(nv, na float64) (Domain, bool) {
	for _, d := range domains {
		if d.contains(nv, na) {
			return d, true
		}
	}
	return Domain{}, false
}

// Classify maps valence/arousal in [-1,1] to an emotion. Values are not
// clamped; anything outside the table resolves through the quadrant fallback.
func Classify(valence, arousal float64) Emotion {
	nv := (valence + 1) / 2
	na := (1 - arousal) / 2
	if d, ok := LookupDomain(nv, na); ok {
		return d.Emotion()
	}
	return QuadrantOf(valence, arousal).Fallback()
}

// ClassifyPosition classifies a screen position.
func ClassifyPosition(p Position) Emotion {
	va := ToValenceArousal(p)
	return Classify(va.Valence, va.Arousal)
}
