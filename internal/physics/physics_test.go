package physics

import "testing"

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name       string
		x1, y1, r1 float64
		x2, y2, r2 float64
		want       bool
	}{
		{"same center", 0, 0, 1, 0, 0, 1, true},
		{"clear overlap", 0, 0, 5, 6, 0, 5, true},
		{"touching is not overlap", 0, 0, 5, 10, 0, 5, false},
		{"apart", 0, 0, 5, 20, 0, 5, false},
		{"diagonal inside", 0, 0, 5, 3, 4, 1, true},
		{"diagonal edge", 0, 0, 4, 3, 4, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CirclesOverlap(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2)
			if got != tt.want {
				t.Fatalf("CirclesOverlap = %v, want %v", got, tt.want)
			}
			// Symmetric
			if rev := CirclesOverlap(tt.x2, tt.y2, tt.r2, tt.x1, tt.y1, tt.r1); rev != got {
				t.Fatalf("CirclesOverlap not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Fatalf("Clamp(-1) = %f, want 0", got)
	}
	if got := Clamp(2, 0, 1); got != 1 {
		t.Fatalf("Clamp(2) = %f, want 1", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Fatalf("Clamp(0.25) = %f, want 0.25", got)
	}
}

func TestRemap(t *testing.T) {
	if got := Remap(12, 12, 36, 12, 28); got != 12 {
		t.Fatalf("Remap low = %f, want 12", got)
	}
	if got := Remap(36, 12, 36, 12, 28); got != 28 {
		t.Fatalf("Remap high = %f, want 28", got)
	}
	if got := Remap(24, 12, 36, 12, 28); got != 20 {
		t.Fatalf("Remap mid = %f, want 20", got)
	}
	if got := Remap(5, 1, 1, 7, 9); got != 7 {
		t.Fatalf("Remap degenerate = %f, want 7", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Fatalf("Lerp = %f, want 5", got)
	}
	if got := Lerp(4, 4, 0.9); got != 4 {
		t.Fatalf("Lerp fixed point = %f, want 4", got)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(800, 600, 40)
	g.Insert(100, 100, 0)
	g.Insert(130, 130, 1)  // Neighbouring cell
	g.Insert(400, 400, 2)  // Far away
	g.Insert(-50, -300, 3) // Above the field, clamped into the corner cell

	found := map[int]bool{}
	g.QueryAround(110, 110, func(i int) bool {
		found[i] = true
		return false
	})
	if !found[0] || !found[1] || found[2] || found[3] {
		t.Fatalf("near (110,110) found %v, want {0,1}", found)
	}

	found = map[int]bool{}
	g.QueryAround(10, 10, func(i int) bool {
		found[i] = true
		return false
	})
	if !found[3] {
		t.Fatalf("clamped item not found near the corner: %v", found)
	}

	g.Clear()
	g.QueryAround(100, 100, func(i int) bool {
		t.Fatalf("item %d after Clear", i)
		return true
	})
}

func TestSpatialGridStopsEarly(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := range 5 {
		g.Insert(10, 10, i)
	}
	calls := 0
	g.QueryAround(10, 10, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
