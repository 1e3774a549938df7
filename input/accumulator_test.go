package input

import (
	"testing"
)

// drag feeds a straight horizontal gesture of n steps of length step starting at x0
func drag(a *Accumulator, x0, step float64, n int) (results []Result) {
	for i := 0; i <= n; i++ {
		results = append(results, a.Sample(x0+float64(i)*step, 100))
	}
	return results
}

func TestFirstSampleStartsSession(t *testing.T) {
	a := NewAccumulator(3000)
	res := a.Sample(50, 60)
	if !res.Started {
		t.Error("first sample did not report Started")
	}
	if res.Moved || res.Progress != 0 {
		t.Errorf("first sample = %+v, want no motion and zero progress", res)
	}
	if res2 := a.Sample(60, 60); res2.Started {
		t.Error("second sample reported Started")
	}
}

func TestStopsDoNotAccumulate(t *testing.T) {
	a := NewAccumulator(3000)
	a.Sample(0, 0)
	for i := 0; i < 5; i++ {
		res := a.Sample(1, 1)
		if res.Moved {
			t.Fatalf("sub-epsilon hop reported Moved")
		}
	}
	if a.Total() != 0 {
		t.Errorf("Total() = %v, want 0", a.Total())
	}
	if a.Stops() != 5 {
		t.Errorf("Stops() = %d, want 5", a.Stops())
	}

	// The reference point did not move, so a 3-unit hop from the origin counts
	res := a.Sample(3, 0)
	if !res.Moved || a.Total() != 3 {
		t.Errorf("Moved = %v Total = %v, want true and 3", res.Moved, a.Total())
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"empty", 0, 0},
		{"half", 1500, 50},
		{"just below", 2990, 2990.0 / 30},
		{"exact", 3000, 100},
		{"beyond", 3050, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator(3000)
			a.Sample(0, 0)
			if tt.distance > 0 {
				a.Sample(tt.distance, 0)
			}
			if got := a.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
			if (a.Progress() == 100) != (a.Total() >= 3000) {
				t.Errorf("progress 100 = %v but total %v", a.Progress() == 100, a.Total())
			}
		})
	}
}

func TestCompleteFiresOnce(t *testing.T) {
	a := NewAccumulator(3000)
	results := drag(a, 0, 50, 80) // 4000 units

	fired := 0
	for i, res := range results {
		if res.Complete {
			fired++
			if i != 60 {
				t.Errorf("Complete at sample %d, want 60 (total 3000)", i)
			}
		}
		if res.Progress > 100 {
			t.Fatalf("Progress = %v exceeds 100", res.Progress)
		}
	}
	if fired != 1 {
		t.Errorf("Complete fired %d times, want 1", fired)
	}
	if !a.Completed() {
		t.Error("Completed() = false after threshold")
	}
}

func TestTotalMonotonic(t *testing.T) {
	a := NewAccumulator(3000)
	prev := 0.0
	pts := [][2]float64{{0, 0}, {10, 0}, {10, 1}, {5, 5}, {5, 5}, {100, 40}, {99, 40}, {-50, -50}}
	for _, p := range pts {
		a.Sample(p[0], p[1])
		if a.Total() < prev {
			t.Fatalf("Total decreased %v -> %v", prev, a.Total())
		}
		prev = a.Total()
	}
}

func TestThresholdFallback(t *testing.T) {
	for _, th := range []float64{0, -1} {
		if got := NewAccumulator(th).Threshold(); got != 3000 {
			t.Errorf("NewAccumulator(%v).Threshold() = %v, want 3000", th, got)
		}
	}
	if got := NewAccumulator(500).Threshold(); got != 500 {
		t.Errorf("Threshold() = %v, want 500", got)
	}
}
