package domain

import (
	"fmt"
	"math"
)

// Blocked - сентинел стоимости для непроходимых клеток.
// +Inf безопасно складывается и сравнивается, переполнения нет.
var Blocked = math.Inf(1)

// ObstacleEvent - динамическое препятствие: клетка Pos занята
// СТРОГО на тике Tick. На соседних тиках клетка свободна
// (если не заблокирована статически).
type ObstacleEvent struct {
	Pos  Position `json:"pos"`
	Tick int      `json:"tick"`
}

// Grid - неизменяемая после загрузки модель местности.
// Хранит стоимость входа в каждую клетку, старт, цель и таблицу
// динамических препятствий. Все запросы чистые, состояние не меняется,
// поэтому один Grid безопасно шарится поиском и репланировщиком.
type Grid struct {
	Height int `json:"height"`
	Width  int `json:"width"`

	Start Position `json:"start"`
	Goal  Position `json:"goal"`

	// costs хранится построчно: costs[y*Width+x].
	// Клиенту карта уходит в виде DTO, а не сырым слайсом.
	costs []float64

	// dynamic: индекс (тик, клетка) -> занято.
	dynamic map[ObstacleEvent]struct{}
}

// NewGrid валидирует входные данные и строит сетку.
// Ошибки конструирования фатальны: молчаливых дефолтов нет.
func NewGrid(rows [][]float64, start, goal Position, events []ObstacleEvent) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(rows[0])
	if width == 0 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{
		Height:  len(rows),
		Width:   width,
		Start:   start,
		Goal:    goal,
		costs:   make([]float64, 0, len(rows)*width),
		dynamic: make(map[ObstacleEvent]struct{}, len(events)),
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrNotRectangular)
		}
		for x, c := range row {
			// Допустимы только положительные конечные стоимости или Blocked.
			// Ноль и отрицательные значения ломают оптимальность поиска.
			if c != Blocked && (c <= 0 || math.IsInf(c, -1) || math.IsNaN(c)) {
				return nil, fmt.Errorf("cell (%d, %d) has cost %v: %w", y, x, c, ErrBadCost)
			}
			g.costs = append(g.costs, c)
		}
	}

	if !g.IsValid(start.Y, start.X) {
		return nil, fmt.Errorf("start %s: %w", start, ErrBadStart)
	}
	if !g.IsValid(goal.Y, goal.X) {
		return nil, fmt.Errorf("goal %s: %w", goal, ErrBadGoal)
	}

	for _, ev := range events {
		if ev.Tick < 0 || !g.inBounds(ev.Pos.Y, ev.Pos.X) {
			return nil, fmt.Errorf("obstacle %s at tick %d: %w", ev.Pos, ev.Tick, ErrBadObstacle)
		}
		g.dynamic[ev] = struct{}{}
	}

	return g, nil
}

// Size возвращает размеры сетки (height, width).
func (g *Grid) Size() (int, int) {
	return g.Height, g.Width
}

// Cost - стоимость ВХОДА в клетку (y, x).
// За границами карты и на статических препятствиях возвращает Blocked.
func (g *Grid) Cost(y, x int) float64 {
	if !g.inBounds(y, x) {
		return Blocked
	}
	return g.costs[y*g.Width+x]
}

// IsValid: клетка внутри карты и не является статическим препятствием.
func (g *Grid) IsValid(y, x int) bool {
	return g.inBounds(y, x) && g.costs[y*g.Width+x] != Blocked
}

// IsOccupied: занята ли клетка на тике t.
// Статические препятствия заняты всегда; динамические - строго на своем тике.
func (g *Grid) IsOccupied(y, x, t int) bool {
	if g.Cost(y, x) == Blocked {
		return true
	}
	_, ok := g.dynamic[ObstacleEvent{Pos: Position{Y: y, X: x}, Tick: t}]
	return ok
}

// DynamicObstacles возвращает копию таблицы препятствий (для DTO и логов).
func (g *Grid) DynamicObstacles() []ObstacleEvent {
	out := make([]ObstacleEvent, 0, len(g.dynamic))
	for ev := range g.dynamic {
		out = append(out, ev)
	}
	return out
}

func (g *Grid) inBounds(y, x int) bool {
	return y >= 0 && y < g.Height && x >= 0 && x < g.Width
}
