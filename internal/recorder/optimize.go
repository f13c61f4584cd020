package recorder

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/circumplex/internal/affect"
)

// OptimizationLevel controls how aggressively a finished path is thinned.
type OptimizationLevel string

const (
	OptimizationLow    OptimizationLevel = "low"
	OptimizationMedium OptimizationLevel = "medium"
	OptimizationHigh   OptimizationLevel = "high"
)

// OptimizationLevels lists the accepted levels from least to most aggressive.
var OptimizationLevels = []OptimizationLevel{OptimizationLow, OptimizationMedium, OptimizationHigh}

// ParseOptimizationLevel parses a level name, ignoring case.
func ParseOptimizationLevel(s string) (OptimizationLevel, error) {
	level := OptimizationLevel(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case OptimizationLow, OptimizationMedium, OptimizationHigh:
		return level, nil
	}
	return "", fmt.Errorf("unknown optimization level %q (want low, medium or high)", s)
}

// Threshold is the minimum distance between retained path points.
// Unknown levels use the medium threshold.
func (l OptimizationLevel) Threshold() float64 {
	switch l {
	case OptimizationLow:
		return 0.01
	case OptimizationHigh:
		return 0.05
	default:
		return 0.03
	}
}

func (l OptimizationLevel) String() string {
	return string(l)
}

// OptimizePath drops intermediate points closer than the level threshold to
// the previously retained point. The first and last points are always kept.
func OptimizePath(path []affect.Position, level OptimizationLevel) []affect.Position {
	if len(path) <= 2 {
		return append([]affect.Position(nil), path...)
	}

	threshold := level.Threshold()
	out := make([]affect.Position, 0, len(path))
	out = append(out, path[0])
	last := path[0]
	for _, p := range path[1 : len(path)-1] {
		if affect.Distance(last, p) < threshold {
			continue
		}
		out = append(out, p)
		last = p
	}
	return append(out, path[len(path)-1])
}
