// Package grid is the wrap-around board geometry shared by the simulation and its adapters
package grid

import "fmt"

// Position is a (row, column) cell on a toroidal board
type Position struct {
	Row int `json:"row" msgpack:"r"`
	Col int `json:"col" msgpack:"c"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Wrap normalizes p into [0,rows) x [0,cols)
func Wrap(p Position, rows, cols int) Position {
	return Position{Row: mod(p.Row, rows), Col: mod(p.Col, cols)}
}

// Advance steps one cell in d and wraps
func Advance(p Position, d Direction, rows, cols int) Position {
	dr, dc := d.Delta()
	return Wrap(Position{Row: p.Row + dr, Col: p.Col + dc}, rows, cols)
}

// Ring returns the eight wrapped neighbours of p, clockwise from north-west
func Ring(p Position, rows, cols int) [8]Position {
	offsets := [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}}
	var ring [8]Position
	for i, o := range offsets {
		ring[i] = Wrap(Position{Row: p.Row + o[0], Col: p.Col + o[1]}, rows, cols)
	}
	return ring
}

// Delta returns the signed wrapped distance from b to a along each axis,
// picking the shorter way around the torus
func Delta(a, b Position, rows, cols int) (dr, dc int) {
	return wrapDelta(a.Row-b.Row, rows), wrapDelta(a.Col-b.Col, cols)
}

func wrapDelta(d, n int) int {
	if d > n/2 {
		d -= n
	}
	if d < -n/2 {
		d += n
	}
	return d
}

func mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
