// Package playback steps through a recorded path at a fixed pace.
package playback

import (
	"context"
	"time"

	"github.com/at-ishikawa/circumplex/internal/affect"
)

// DefaultStepDelay is the pause between steps when none is configured.
const DefaultStepDelay = 300 * time.Millisecond

// Step is one point of a replayed path.
type Step struct {
	Index    int                   `json:"index"`
	Position affect.Position       `json:"position"`
	Affect   affect.ValenceArousal `json:"affect"`
	Emotion  affect.Emotion        `json:"emotion"`
}

// Steps classifies every point of path without waiting.
func Steps(path []affect.Position) []Step {
	steps := make([]Step, len(path))
	for i, p := range path {
		va := affect.ToValenceArousal(p)
		steps[i] = Step{
			Index:    i,
			Position: p,
			Affect:   va,
			Emotion:  affect.Classify(va.Valence, va.Arousal),
		}
	}
	return steps
}

// Play calls fn for each point of path, waiting delay between calls.
// The first step is reported immediately. Play returns ctx.Err() when the
// context ends before the last step.
func Play(ctx context.Context, path []affect.Position, delay time.Duration, fn func(Step)) error {
	if delay <= 0 {
		delay = DefaultStepDelay
	}
	steps := Steps(path)
	if len(steps) == 0 {
		return nil
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for i, step := range steps {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		fn(step)
	}
	return nil
}
