package agent

import (
	"courier-server/internal/domain"
	"courier-server/internal/search"
	"courier-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Strategy - алгоритм построения начального плана.
type Strategy string

const (
	StrategyUCS   Strategy = "ucs"
	StrategyAStar Strategy = "a_star"
)

// Courier - агент доставки. Хранит текущую позицию и закоммиченный план;
// умеет строить начальный план и репланировать при конфликте.
//
// Машина состояний простая: агент либо следует по плану, либо
// синхронно репланирует. Репланирование завершается ДО следующего шага,
// частичного или перемежающегося исполнения нет.
//
// Инвариант: сразу после любого успешного (ре)планирования Path[0] == Pos.
type Courier struct {
	Grid *domain.Grid

	// Pos - текущая позиция. Двигает её цикл исполнения (engine),
	// строго вдоль закоммиченного пути.
	Pos domain.Position

	// Закоммиченный план. Заменяется ЦЕЛИКОМ при каждом успешном
	// (ре)планировании, частичных правок нет.
	Path          []domain.Position
	PathCost      float64
	NodesExpanded int

	rec domain.Recorder
}

// NewCourier создает агента на стартовой клетке сетки.
// rec == nil допустим: диагностика просто отбрасывается.
func NewCourier(g *domain.Grid, rec domain.Recorder) *Courier {
	if rec == nil {
		rec = domain.NopRecorder{}
	}
	return &Courier{
		Grid: g,
		Pos:  g.Start,
		rec:  rec,
	}
}

// Plan строит начальный план от Grid.Start до Grid.Goal.
// Возвращает false, если цель недостижима: в этом случае симуляция
// обязана остановиться ДО первого шага.
func (c *Courier) Plan(s Strategy) bool {
	var res search.Result
	switch s {
	case StrategyUCS:
		res = search.UniformCost(c.Grid, c.Grid.Start, c.Grid.Goal)
	default:
		res = search.AStar(c.Grid, c.Grid.Start, c.Grid.Goal)
	}

	if !res.Found() {
		return false
	}

	c.commit(res)
	c.rec.Record(domain.Event{
		Tick:  0,
		Type:  domain.EventPlan,
		Pos:   c.Pos,
		Cost:  res.Cost,
		Nodes: res.NodesExpanded,
	})
	return true
}

// CheckAndReplan вызывается циклом исполнения, когда клетка blocked,
// в которую агент собирался войти, занята на тике t.
//
// Репланирование - это ПОЛНЫЙ перезапуск A* от текущей позиции, а не
// локальная правка хвоста. Альтернативный старт передается параметром:
// Grid.Start не трогаем, сетка остается разделяемой и только для чтения.
//
// Конфликтная клетка маскируется на время перезапуска, чтобы новый план
// не повторил только что заблокированный шаг на том же тике.
func (c *Courier) CheckAndReplan(blocked domain.Position, t int) bool {
	replanLogger := logger.Log.WithFields(logrus.Fields{
		"component": "replanner",
		"tick":      t,
		"pos":       c.Pos.String(),
		"blocked":   blocked.String(),
	})

	masked := maskedGrid{m: c.Grid, avoid: blocked}
	res := search.AStar(masked, c.Pos, c.Grid.Goal)

	if !res.Found() {
		// Неудача не фатальна: состояние агента не меняем,
		// решение остановиться принимает цикл исполнения.
		replanLogger.WithField("nodes", res.NodesExpanded).Warn("Replanning failed, no path from current position")
		c.rec.Record(domain.Event{
			Tick:  t,
			Type:  domain.EventReplanFail,
			Pos:   c.Pos,
			Nodes: res.NodesExpanded,
		})
		return false
	}

	c.commit(res)
	replanLogger.WithFields(logrus.Fields{
		"cost":  res.Cost,
		"nodes": res.NodesExpanded,
	}).Info("Replanning successful")
	c.rec.Record(domain.Event{
		Tick:  t,
		Type:  domain.EventReplanOK,
		Pos:   c.Pos,
		Cost:  res.Cost,
		Nodes: res.NodesExpanded,
	})
	return true
}

// MoveTo продвигает агента на следующую клетку плана.
// Зовется только циклом исполнения.
func (c *Courier) MoveTo(next domain.Position) {
	c.Pos = next
}

// AtGoal: агент стоит на целевой клетке.
func (c *Courier) AtGoal() bool {
	return c.Pos == c.Grid.Goal
}

// commit заменяет закоммиченный план целиком.
func (c *Courier) commit(res search.Result) {
	c.Path = res.Path
	c.PathCost = res.Cost
	c.NodesExpanded = res.NodesExpanded
}

// maskedGrid - обертка над Costmap, которая считает одну клетку
// непроходимой. Живет только в пределах одного перезапуска поиска
// и не протекает в последующие несвязанные поиски.
type maskedGrid struct {
	m     search.Costmap
	avoid domain.Position
}

func (mg maskedGrid) Size() (int, int) { return mg.m.Size() }

func (mg maskedGrid) Cost(y, x int) float64 {
	if (domain.Position{Y: y, X: x}) == mg.avoid {
		return domain.Blocked
	}
	return mg.m.Cost(y, x)
}

func (mg maskedGrid) IsValid(y, x int) bool {
	if (domain.Position{Y: y, X: x}) == mg.avoid {
		return false
	}
	return mg.m.IsValid(y, x)
}
