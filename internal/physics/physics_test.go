package physics

import (
	"sort"
	"testing"
)

func TestOverlaps(t *testing.T) {
	base := NewRect(10, 10, 20, 20)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", NewRect(10, 10, 20, 20), true},
		{"partial", NewRect(25, 25, 20, 20), true},
		{"contained", NewRect(15, 15, 2, 2), true},
		{"touching right edge", NewRect(30, 10, 5, 5), false},
		{"touching bottom edge", NewRect(10, 30, 5, 5), false},
		{"touching left edge", NewRect(5, 10, 5, 5), false},
		{"touching top edge", NewRect(10, 5, 5, 5), false},
		{"touching corner", NewRect(30, 30, 5, 5), false},
		{"one pixel in", NewRect(29, 29, 5, 5), true},
		{"disjoint", NewRect(100, 100, 5, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("Overlaps is not symmetric: reverse = %v", got)
			}
		})
	}
}

func TestClampInto(t *testing.T) {
	bounds := NewRect(0, 0, 100, 50)
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside unchanged", NewRect(10, 10, 10, 10), NewRect(10, 10, 10, 10)},
		{"left", NewRect(-5, 10, 10, 10), NewRect(0, 10, 10, 10)},
		{"right", NewRect(95, 10, 10, 10), NewRect(90, 10, 10, 10)},
		{"below", NewRect(10, 45, 10, 10), NewRect(10, 40, 10, 10)},
		{"too wide", NewRect(30, 0, 200, 10), NewRect(0, 0, 200, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.ClampInto(bounds); got != tc.want {
				t.Errorf("ClampInto = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestOutsideHalfOpen(t *testing.T) {
	bounds := NewRect(0, 0, 100, 100)
	onEdge := NewRect(0, 0, 10, 10)
	if onEdge.OutsideX(bounds) || onEdge.OutsideY(bounds) {
		t.Error("box resting on the top-left edge reported outside")
	}
	onFar := NewRect(90, 90, 10, 10)
	if onFar.OutsideX(bounds) || onFar.OutsideY(bounds) {
		t.Error("box resting on the bottom-right edge reported outside")
	}
	if !NewRect(-1, 0, 10, 10).OutsideX(bounds) {
		t.Error("box past left edge not reported")
	}
	if !NewRect(0, 91, 10, 10).OutsideY(bounds) {
		t.Error("box past bottom edge not reported")
	}
}

func TestAnchors(t *testing.T) {
	r := MidBottomAt(50, 100, 6, 14)
	if r.X != 47 || r.Bottom() != 100 {
		t.Errorf("MidBottomAt = %+v", r)
	}
	cx, cy := CenteredAt(20, 30, 10, 4).Center()
	if cx != 20 || cy != 30 {
		t.Errorf("CenteredAt center = %v,%v", cx, cy)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(640, 480, 64)
	boxes := []Rect{
		NewRect(0, 0, 10, 10),     // cell 0,0
		NewRect(70, 10, 10, 10),   // cell 1,0
		NewRect(300, 300, 10, 10), // far away
		NewRect(630, 470, 20, 20), // clamped to last cell
	}
	for i, b := range boxes {
		g.Insert(b, i)
	}

	var got []int
	g.QueryAround(NewRect(20, 20, 4, 4), func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("neighborhood = %v, want [0 1]", got)
	}

	found := false
	g.QueryAround(NewRect(620, 460, 4, 4), func(i int) bool {
		found = found || i == 3
		return false
	})
	if !found {
		t.Error("item past the far edge not found in the edge cell")
	}

	g.Clear()
	calls := 0
	g.QueryAround(NewRect(20, 20, 4, 4), func(int) bool { calls++; return false })
	if calls != 0 {
		t.Errorf("cleared grid returned %d items", calls)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(NewRect(1, 1, 2, 2), i)
	}
	calls := 0
	g.QueryAround(NewRect(1, 1, 2, 2), func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
