package affect

import (
	"math"
	"sort"
	"strings"
)

// StandardEmotion is a named reference point in valence/arousal space.
type StandardEmotion struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

var standardEmotions = map[string]StandardEmotion{
	// high arousal, negative valence
	"angry":      {Name: "angry", Label: "Angry", Valence: -0.6, Arousal: 0.6},
	"frustrated": {Name: "frustrated", Label: "Frustrated", Valence: -0.5, Arousal: 0.4},
	"alarmed":    {Name: "alarmed", Label: "Alarmed", Valence: -0.7, Arousal: 0.7},
	"infuriated": {Name: "infuriated", Label: "Infuriated", Valence: -0.9, Arousal: 0.8},
	"panicked":   {Name: "panicked", Label: "Panicked", Valence: -0.8, Arousal: 0.9},

	// low arousal, negative valence
	"sad":       {Name: "sad", Label: "Sad", Valence: -0.6, Arousal: -0.4},
	"miserable": {Name: "miserable", Label: "Miserable", Valence: -0.8, Arousal: -0.6},
	"gloomy":    {Name: "gloomy", Label: "Gloomy", Valence: -0.5, Arousal: -0.5},
	"bored":     {Name: "bored", Label: "Bored", Valence: -0.3, Arousal: -0.7},
	"tired":     {Name: "tired", Label: "Tired", Valence: -0.2, Arousal: -0.8},

	// high arousal, positive valence
	"excited":    {Name: "excited", Label: "Excited", Valence: 0.7, Arousal: 0.7},
	"delighted":  {Name: "delighted", Label: "Delighted", Valence: 0.8, Arousal: 0.6},
	"astonished": {Name: "astonished", Label: "Astonished", Valence: 0.5, Arousal: 0.8},
	"ecstatic":   {Name: "ecstatic", Label: "Ecstatic", Valence: 0.9, Arousal: 0.8},

	// low arousal, positive valence
	"calm":    {Name: "calm", Label: "Calm", Valence: 0.4, Arousal: -0.6},
	"relaxed": {Name: "relaxed", Label: "Relaxed", Valence: 0.6, Arousal: -0.7},
	"serene":  {Name: "serene", Label: "Serene", Valence: 0.7, Arousal: -0.5},

	"neutral":       {Name: "neutral", Label: "Neutral", Valence: 0, Arousal: 0},
	"apathetic":     {Name: "apathetic", Label: "Apathetic", Valence: 0, Arousal: -0.2},
	"contemplative": {Name: "contemplative", Label: "Contemplative", Valence: 0.1, Arousal: -0.1},
}

// StandardEmotions returns the reference emotions sorted by name.
func StandardEmotions() []StandardEmotion {
	out := make([]StandardEmotion, 0, len(standardEmotions))
	for _, e := range standardEmotions {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// LookupStandard finds a reference emotion by case-insensitive name.
func LookupStandard(name string) (StandardEmotion, bool) {
	e, ok := standardEmotions[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Position returns where the reference emotion sits on the plane.
func (e StandardEmotion) Position() Position {
	return FromValenceArousal(ValenceArousal{Valence: e.Valence, Arousal: e.Arousal})
}

// NearestStandard returns the reference emotion closest to the point.
// Ties resolve to the alphabetically first name so the result is stable.
func NearestStandard(valence, arousal float64) StandardEmotion {
	var nearest StandardEmotion
	best := math.Inf(1)
	for _, e := range StandardEmotions() {
		d := math.Hypot(valence-e.Valence, arousal-e.Arousal)
		if d < best {
			best = d
			nearest = e
		}
	}
	return nearest
}

// Describe returns a "Near <Label>" description of the point.
func Describe(valence, arousal float64) string {
	return "Near " + NearestStandard(valence, arousal).Label
}
