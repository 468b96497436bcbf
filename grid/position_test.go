package grid

import "testing"

func TestWrap(t *testing.T) {
	const rows, cols = 20, 80
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"inside", Position{5, 5}, Position{5, 5}},
		{"row underflow", Position{-1, 3}, Position{19, 3}},
		{"row overflow", Position{20, 3}, Position{0, 3}},
		{"col underflow", Position{3, -1}, Position{3, 79}},
		{"col overflow", Position{3, 80}, Position{3, 0}},
		{"far negative", Position{-41, -161}, Position{19, 79}},
		{"far positive", Position{45, 170}, Position{5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in, rows, cols); got != tt.want {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdvanceWrapsEveryEdge(t *testing.T) {
	const rows, cols = 4, 6
	tests := []struct {
		from Position
		dir  Direction
		want Position
	}{
		{Position{0, 2}, Up, Position{3, 2}},
		{Position{3, 2}, Down, Position{0, 2}},
		{Position{1, 0}, Left, Position{1, 5}},
		{Position{1, 5}, Right, Position{1, 0}},
		{Position{2, 2}, DirNone, Position{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := Advance(tt.from, tt.dir, rows, cols); got != tt.want {
				t.Errorf("Advance(%v, %v) = %v, want %v", tt.from, tt.dir, got, tt.want)
			}
		})
	}
}

func TestAdvanceOppositeReturnsHome(t *testing.T) {
	const rows, cols = 5, 7
	for _, d := range []Direction{Up, Down, Left, Right} {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				p := Position{r, c}
				back := Advance(Advance(p, d, rows, cols), d.Opposite(), rows, cols)
				if back != p {
					t.Fatalf("%v then %v from %v landed on %v", d, d.Opposite(), p, back)
				}
			}
		}
	}
}

func TestRingWrapsAtCorner(t *testing.T) {
	ring := Ring(Position{0, 0}, 10, 10)
	want := map[Position]bool{
		{9, 9}: true, {9, 0}: true, {9, 1}: true, {0, 1}: true,
		{1, 1}: true, {1, 0}: true, {1, 9}: true, {0, 9}: true,
	}
	for _, p := range ring {
		if !want[p] {
			t.Errorf("unexpected ring cell %v", p)
		}
		delete(want, p)
	}
	if len(want) != 0 {
		t.Errorf("missing ring cells %v", want)
	}
}

func TestDeltaPicksShortestWay(t *testing.T) {
	dr, dc := Delta(Position{19, 0}, Position{0, 79}, 20, 80)
	if dr != -1 || dc != 1 {
		t.Errorf("Delta = (%d,%d), want (-1,1)", dr, dc)
	}
}

func TestDirectionOppositeAndValid(t *testing.T) {
	pairs := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left, DirNone: DirNone}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", d, got, want)
		}
	}
	if DirNone.Valid() || Direction(9).Valid() {
		t.Error("Valid accepted a non-heading")
	}
	if !Right.Valid() {
		t.Error("Valid rejected Right")
	}
}
