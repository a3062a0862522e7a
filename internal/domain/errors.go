package domain

import "errors"

// Ошибки конструирования сетки. Все они фатальны для сессии:
// без валидной карты симуляция не стартует (см. NewGrid).
var (
	ErrEmptyGrid      = errors.New("grid must contain at least one row")
	ErrNotRectangular = errors.New("grid rows must have equal length")
	ErrBadCost        = errors.New("cell cost must be positive and finite, or the blocked sentinel")
	ErrBadStart       = errors.New("start must be inside the grid and not blocked")
	ErrBadGoal        = errors.New("goal must be inside the grid and not blocked")
	ErrBadObstacle    = errors.New("dynamic obstacle must be inside the grid with a non-negative time step")
)
