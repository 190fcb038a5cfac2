package trivia

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	idx   int
	calls []int
}

func (f *fixedRand) IntN(n int) int {
	f.calls = append(f.calls, n)
	return f.idx % n
}

func TestNextSkipsPreviousQuestions(t *testing.T) {
	candidates := makeQuestions(3)
	selector := NewSelector(rand.New(rand.NewPCG(1, 2)))

	for i := 0; i < 50; i++ {
		q, ok := selector.Next(candidates, []int{1, 2})
		require.True(t, ok)
		assert.Equal(t, 3, q.ID)
	}
}

func TestNextExhausted(t *testing.T) {
	selector := NewSelector(nil)

	_, ok := selector.Next(makeQuestions(1), []int{1})
	assert.False(t, ok)

	_, ok = selector.Next(nil, nil)
	assert.False(t, ok)
}

func TestNextUsesInjectedSource(t *testing.T) {
	candidates := makeQuestions(5)
	src := &fixedRand{idx: 1}
	selector := NewSelector(src)

	q, ok := selector.Next(candidates, []int{1})

	require.True(t, ok)
	assert.Equal(t, 3, q.ID, "index 1 of the remaining [2 3 4 5]")
	assert.Equal(t, []int{4}, src.calls)
}

func TestNextCoversAllRemaining(t *testing.T) {
	candidates := makeQuestions(4)
	selector := NewSelector(rand.New(rand.NewPCG(7, 7)))

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		q, ok := selector.Next(candidates, []int{4})
		require.True(t, ok)
		seen[q.ID] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestQuizSessionRunsToExhaustion(t *testing.T) {
	candidates := makeQuestions(6)
	selector := NewSelector(rand.New(rand.NewPCG(3, 4)))

	var previous []int
	for {
		q, ok := selector.Next(candidates, previous)
		if !ok {
			break
		}
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, previous)
}

func TestUnseenIgnoresUnknownIDs(t *testing.T) {
	got := Unseen(makeQuestions(2), []int{99, 2})
	assert.Equal(t, []int{1}, ids(got))
}
