package recipes

import (
	"sync"
	"testing"
)

func TestStepTrackerToggle(t *testing.T) {
	t.Parallel()

	st := NewStepTracker()
	if st.Done(0, 1) {
		t.Fatal("fresh tracker should have no completed steps")
	}

	st.Toggle(0, 1)
	if !st.Done(0, 1) {
		t.Fatal("step should be done after toggle")
	}
	if st.Completed(0) != 1 {
		t.Fatalf("expected 1 completed step, got %d", st.Completed(0))
	}

	st.Toggle(0, 1)
	if st.Done(0, 1) {
		t.Fatal("second toggle should undo the step")
	}
}

func TestStepTrackerRecipesIndependent(t *testing.T) {
	t.Parallel()

	st := NewStepTracker()
	st.Toggle(0, 0)
	st.Toggle(1, 0)
	st.Toggle(1, 1)

	if st.Completed(0) != 1 || st.Completed(1) != 2 {
		t.Fatalf("per-recipe counts wrong: %d, %d", st.Completed(0), st.Completed(1))
	}
}

func TestStepTrackerConcurrentAccess(t *testing.T) {
	t.Parallel()

	st := NewStepTracker()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				st.Toggle(0, g)
				st.Done(0, g)
				st.Completed(0)
				st.Progress(0, 8)
			}
		}(g)
	}
	wg.Wait()

	// 100 toggles per goroutine is an even count, so every step ends unticked.
	if got := st.Completed(0); got != 0 {
		t.Fatalf("expected all steps unticked after even toggle counts, got %d", got)
	}
}

func TestStepTrackerProgress(t *testing.T) {
	t.Parallel()

	st := NewStepTracker()
	if got := st.Progress(0, 0); got != 0 {
		t.Fatalf("stepless recipe should report 0, got %d", got)
	}

	st.Toggle(0, 0)
	st.Toggle(0, 1)
	tests := []struct {
		total int
		want  int
	}{
		{total: 4, want: 50},
		{total: 3, want: 67}, // rounds 66.6 up
		{total: 2, want: 100},
		{total: 7, want: 29}, // rounds 28.5 up
	}
	for _, tc := range tests {
		if got := st.Progress(0, tc.total); got != tc.want {
			t.Fatalf("Progress(0, %d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}
