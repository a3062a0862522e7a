package domain

import (
	"errors"
	"math"
	"testing"
)

func uniformRows(h, w int) [][]float64 {
	rows := make([][]float64, h)
	for y := range rows {
		rows[y] = make([]float64, w)
		for x := range rows[y] {
			rows[y][x] = 1
		}
	}
	return rows
}

func TestNewGrid_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		start   Position
		goal    Position
		events  []ObstacleEvent
		wantErr error
	}{
		{
			name:    "empty grid",
			rows:    nil,
			wantErr: ErrEmptyGrid,
		},
		{
			name:    "empty first row",
			rows:    [][]float64{{}},
			wantErr: ErrEmptyGrid,
		},
		{
			name:    "ragged rows",
			rows:    [][]float64{{1, 1}, {1}},
			wantErr: ErrNotRectangular,
		},
		{
			name:    "zero cost cell",
			rows:    [][]float64{{1, 0}, {1, 1}},
			wantErr: ErrBadCost,
		},
		{
			name:    "negative cost cell",
			rows:    [][]float64{{1, -3}, {1, 1}},
			wantErr: ErrBadCost,
		},
		{
			name:    "start out of bounds",
			rows:    uniformRows(2, 2),
			start:   Position{Y: 5, X: 0},
			goal:    Position{Y: 1, X: 1},
			wantErr: ErrBadStart,
		},
		{
			name:    "goal on blocked cell",
			rows:    [][]float64{{1, 1}, {1, Blocked}},
			start:   Position{Y: 0, X: 0},
			goal:    Position{Y: 1, X: 1},
			wantErr: ErrBadGoal,
		},
		{
			name:    "obstacle out of bounds",
			rows:    uniformRows(2, 2),
			goal:    Position{Y: 1, X: 1},
			events:  []ObstacleEvent{{Pos: Position{Y: 9, X: 9}, Tick: 1}},
			wantErr: ErrBadObstacle,
		},
		{
			name:    "obstacle with negative tick",
			rows:    uniformRows(2, 2),
			goal:    Position{Y: 1, X: 1},
			events:  []ObstacleEvent{{Pos: Position{Y: 0, X: 1}, Tick: -1}},
			wantErr: ErrBadObstacle,
		},
		{
			name: "valid grid",
			rows: uniformRows(3, 3),
			goal: Position{Y: 2, X: 2},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.rows, tt.start, tt.goal, tt.events)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewGrid() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Height != len(tt.rows) || g.Width != len(tt.rows[0]) {
				t.Errorf("size = %dx%d, want %dx%d", g.Height, g.Width, len(tt.rows), len(tt.rows[0]))
			}
		})
	}
}

func TestGrid_Boundary(t *testing.T) {
	g, err := NewGrid([][]float64{{1, 1}, {1, Blocked}}, Position{}, Position{Y: 0, X: 1}, nil)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	outside := []Position{
		{Y: -1, X: 0}, {Y: 0, X: -1}, {Y: 2, X: 0}, {Y: 0, X: 2},
	}
	for _, p := range outside {
		if g.IsValid(p.Y, p.X) {
			t.Errorf("IsValid%s = true, want false (out of bounds)", p)
		}
		if !math.IsInf(g.Cost(p.Y, p.X), 1) {
			t.Errorf("Cost%s = %v, want +Inf", p, g.Cost(p.Y, p.X))
		}
	}

	// Статическое препятствие внутри карты.
	if g.IsValid(1, 1) {
		t.Error("IsValid(1,1) = true, want false (static obstacle)")
	}
	if !g.IsOccupied(1, 1, 0) || !g.IsOccupied(1, 1, 42) {
		t.Error("static obstacle must be occupied at every tick")
	}
}

func TestGrid_OccupancyIsTimeExact(t *testing.T) {
	events := []ObstacleEvent{{Pos: Position{Y: 2, X: 3}, Tick: 5}}
	g, err := NewGrid(uniformRows(4, 5), Position{}, Position{Y: 3, X: 4}, events)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	if !g.IsOccupied(2, 3, 5) {
		t.Error("IsOccupied(2,3,5) = false, want true")
	}
	if g.IsOccupied(2, 3, 4) {
		t.Error("IsOccupied(2,3,4) = true, want false")
	}
	if g.IsOccupied(2, 3, 6) {
		t.Error("IsOccupied(2,3,6) = true, want false")
	}
}

func TestPosition_Manhattan(t *testing.T) {
	a := Position{Y: 1, X: 2}
	b := Position{Y: 4, X: 0}
	if d := a.ManhattanTo(b); d != 5 {
		t.Errorf("ManhattanTo = %d, want 5", d)
	}
	if d := b.ManhattanTo(a); d != 5 {
		t.Errorf("distance must be symmetric, got %d", d)
	}
	if d := a.ManhattanTo(a); d != 0 {
		t.Errorf("distance to self = %d, want 0", d)
	}
}
