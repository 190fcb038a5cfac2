package trivia

import "math/rand/v2"

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2
// satisfies it, which lets tests pass a seeded generator.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

// IntN uses the package-level generator, which is safe for concurrent use.
func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Selector draws quiz questions the player has not seen yet.
type Selector struct {
	rnd RandSource
}

// NewSelector builds a selector. A nil source falls back to math/rand/v2.
func NewSelector(rnd RandSource) *Selector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Selector{rnd: rnd}
}

// Next returns a uniformly random candidate whose id is not in previousIDs.
// The boolean is false once every candidate has been seen; that is the
// normal end of a quiz, not an error.
func (s *Selector) Next(candidates []Question, previousIDs []int) (Question, bool) {
	remaining := Unseen(candidates, previousIDs)
	if len(remaining) == 0 {
		return Question{}, false
	}
	return remaining[s.rnd.IntN(len(remaining))], true
}

// Unseen filters out candidates whose id appears in previousIDs.
func Unseen(candidates []Question, previousIDs []int) []Question {
	seen := make(map[int]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		seen[id] = struct{}{}
	}
	out := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}
