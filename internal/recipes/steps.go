package recipes

import (
	"math"
	"sync"
)

// StepTracker records which cooking steps a user ticked off, per recipe.
// Purely in-memory: progress never survives a reload. Safe for concurrent
// use; the result page reads while step toggles write.
type StepTracker struct {
	mu        sync.Mutex
	completed map[int]map[int]struct{}
}

func NewStepTracker() *StepTracker {
	return &StepTracker{completed: make(map[int]map[int]struct{})}
}

func (st *StepTracker) Toggle(recipeIndex, stepIndex int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	steps, ok := st.completed[recipeIndex]
	if !ok {
		steps = make(map[int]struct{})
		st.completed[recipeIndex] = steps
	}
	if _, done := steps[stepIndex]; done {
		delete(steps, stepIndex)
	} else {
		steps[stepIndex] = struct{}{}
	}
}

func (st *StepTracker) Done(recipeIndex, stepIndex int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, done := st.completed[recipeIndex][stepIndex]
	return done
}

func (st *StepTracker) Completed(recipeIndex int) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.completed[recipeIndex])
}

// Progress is the completion percentage, rounded to the nearest integer,
// zero for stepless recipes.
func (st *StepTracker) Progress(recipeIndex, totalSteps int) int {
	if totalSteps <= 0 {
		return 0
	}
	st.mu.Lock()
	completed := len(st.completed[recipeIndex])
	st.mu.Unlock()
	return int(math.Round(float64(completed) / float64(totalSteps) * 100))
}
