package search

import (
	"courier-server/internal/domain"
	"courier-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Costmap - минимальный контракт местности, который нужен поиску.
// *domain.Grid реализует его; репланировщик подсовывает обертку,
// маскирующую конфликтную клетку, не трогая сам Grid.
type Costmap interface {
	// Size возвращает размеры карты (height, width).
	Size() (int, int)
	// Cost - стоимость входа в клетку; Blocked для непроходимых.
	Cost(y, x int) float64
	// IsValid: клетка в границах и не статическое препятствие.
	IsValid(y, x int) bool
}

// Heuristic оценивает остаточную стоимость пути от a до цели b.
type Heuristic func(a, b domain.Position) float64

// Manhattan - манхэттенское расстояние |dy| + |dx|.
// Допустима и консистентна для 4-связной сетки при стоимости клеток >= 1.
// ВНИМАНИЕ: если стоимости могут быть < 1, оценка перестает быть
// допустимой и оптимальность A* не гарантируется. Известное ограничение,
// парсер карт таких стоимостей не выдает.
func Manhattan(a, b domain.Position) float64 {
	return float64(a.ManhattanTo(b))
}

// Порядок обхода соседей: вправо, влево, вниз, вверх (dy, dx).
// Порядок влияет только на разрыв ничьих, не на оптимальность.
var neighborSteps = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// UniformCost - поиск с равномерной стоимостью (Дейкстра по 4-связной сетке).
// Фронтир упорядочен по накопленной стоимости G.
func UniformCost(m Costmap, start, goal domain.Position) Result {
	return run(m, start, goal, nil, "ucs")
}

// AStar - эвристический поиск. Та же дисциплина фронтира, но ключ
// приоритета G + Manhattan(клетка, цель).
func AStar(m Costmap, start, goal domain.Position) Result {
	return run(m, start, goal, Manhattan, "a_star")
}

// run - общее ядро обоих алгоритмов.
//
// Вместо копии пути в каждом элементе фронтира храним ссылку на
// родителя для лучшего известного G и восстанавливаем путь один раз,
// при снятии цели. Поведение то же, памяти на порядок меньше.
func run(m Costmap, start, goal domain.Position, h Heuristic, name string) Result {
	searchLogger := logger.Log.WithFields(logrus.Fields{
		"component": "search",
		"algorithm": name,
		"start":     start.String(),
		"goal":      goal.String(),
	})

	if !m.IsValid(start.Y, start.X) {
		searchLogger.Debug("Start cell is invalid, no search performed")
		return noPath(0)
	}

	open := make(frontier, 0)
	order := 0
	open.push(start, 0, key(h, 0, start, goal), order)

	// Лучший известный G на клетку + родительские ссылки.
	gScore := map[domain.Position]float64{start: 0}
	parent := make(map[domain.Position]domain.Position)

	nodes := 0

	for open.Len() > 0 {
		item := open.pop()
		// Считаем КАЖДОЕ снятие, включая устаревшие записи:
		// метрика фиксирует работу очереди, а не число уникальных клеток.
		nodes++

		if item.G > gScore[item.Pos] {
			continue // устаревшая запись, клетку уже открыли дешевле
		}

		if item.Pos == goal {
			path := reconstruct(parent, start, goal)
			searchLogger.WithFields(logrus.Fields{
				"cost":  item.G,
				"nodes": nodes,
				"len":   len(path),
			}).Debug("Path found")
			return Result{Path: path, Cost: item.G, NodesExpanded: nodes}
		}

		for _, step := range neighborSteps {
			ny, nx := item.Pos.Y+step[0], item.Pos.X+step[1]
			if !m.IsValid(ny, nx) {
				continue
			}

			next := domain.Position{Y: ny, X: nx}
			// Стоимость перехода = стоимость ВХОДА в соседнюю клетку.
			ng := item.G + m.Cost(ny, nx)

			if best, seen := gScore[next]; !seen || ng < best {
				gScore[next] = ng
				parent[next] = item.Pos
				order++
				open.push(next, ng, key(h, ng, next, goal), order)
			}
		}
	}

	searchLogger.WithField("nodes", nodes).Debug("Frontier exhausted, goal unreachable")
	return noPath(nodes)
}

// key считает приоритет элемента фронтира.
func key(h Heuristic, g float64, pos, goal domain.Position) float64 {
	if h == nil {
		return g
	}
	return g + h(pos, goal)
}

// reconstruct разматывает родительские ссылки от цели к старту
// и разворачивает результат.
func reconstruct(parent map[domain.Position]domain.Position, start, goal domain.Position) []domain.Position {
	path := []domain.Position{goal}
	cur := goal
	for cur != start {
		prev, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
