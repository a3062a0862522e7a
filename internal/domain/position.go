package domain

import "fmt"

// Position - координата клетки на сетке.
// Порядок (Y, X) выбран намеренно: карта хранится построчно,
// и все публичные запросы сетки принимают (y, x).
type Position struct {
	Y int `json:"y"`
	X int `json:"x"`
}

// Shift возвращает НОВУЮ позицию, сдвинутую на (dy, dx).
// Текущую позицию не меняет.
func (p Position) Shift(dy, dx int) Position {
	return Position{Y: p.Y + dy, X: p.X + dx}
}

// ManhattanTo считает манхэттенское расстояние до другой клетки.
// Для 4-связной сетки это допустимая эвристика (при стоимости клеток >= 1).
func (p Position) ManhattanTo(o Position) int {
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	return dy + dx
}

// String для логов: "(y, x)" — тот же формат пишется в run-лог.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Y, p.X)
}
