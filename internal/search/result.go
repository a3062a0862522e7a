package search

import (
	"math"

	"courier-server/internal/domain"
)

// Result - результат одного запуска поиска. Объект-значение:
// создается заново на каждый вызов и принадлежит вызывающему.
type Result struct {
	// Path - путь от старта до цели включительно.
	// nil, если цель недостижима.
	Path []domain.Position `json:"path"`

	// Cost - сумма стоимостей входа вдоль пути (старт не считается).
	// +Inf, если пути нет.
	Cost float64 `json:"cost"`

	// NodesExpanded - число снятий с очереди приоритетов.
	// Чисто диагностическая метрика для сравнения алгоритмов.
	NodesExpanded int `json:"nodesExpanded"`
}

// Found сообщает, нашелся ли путь.
// Недостижимость - это НОРМАЛЬНЫЙ результат, не ошибка (см. таксономию ошибок).
func (r Result) Found() bool {
	return len(r.Path) > 0
}

// noPath - каноничный "пути нет" результат.
func noPath(nodes int) Result {
	return Result{Path: nil, Cost: math.Inf(1), NodesExpanded: nodes}
}
