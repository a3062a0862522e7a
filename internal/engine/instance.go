package engine

import (
	"courier-server/internal/agent"
	"courier-server/internal/domain"
)

// Outcome - итог симуляции одного инстанса.
type Outcome string

const (
	// OutcomeRunning - симуляция идет (или готова идти).
	OutcomeRunning Outcome = "RUNNING"
	// OutcomeArrived - агент дошел до цели.
	OutcomeArrived Outcome = "ARRIVED"
	// OutcomeNoPath - начальный план не нашелся; движение не начиналось.
	OutcomeNoPath Outcome = "NO_PATH"
	// OutcomeStuck - репланирование провалилось, агент остановлен.
	OutcomeStuck Outcome = "STUCK"
	// OutcomeDeadEnd - закоммиченный путь кончился до цели.
	OutcomeDeadEnd Outcome = "DEAD_END"
	// OutcomeMaxSteps - сработала защитная граница по шагам.
	OutcomeMaxSteps Outcome = "MAX_STEPS"
)

// Instance - одна изолированная сессия симуляции: сетка, агент,
// дискретное время и история диагностических событий.
//
// Instance владеет сеткой (read-only) и агентом; никакого доступа
// из других горутин - каждую сессию двигает ровно один вызывающий.
type Instance struct {
	ID   string
	Grid *domain.Grid

	Courier *agent.Courier

	// Tick - дискретное время симуляции. Репланирование происходит
	// строго МЕЖДУ шагами, внутри одного вызова Step.
	Tick int

	// remaining - неисполненный хвост закоммиченного пути.
	// После каждого успешного (ре)плана: remaining == Path[1:].
	remaining []domain.Position

	// Events - полная история диагностики. Сохраняется даже после
	// остановки агента: путь до точки провала нужен для разбора.
	Events []domain.Event

	Outcome  Outcome
	Strategy agent.Strategy
	MaxSteps int
}

// NewInstance создает сессию. План еще не построен: зовите Plan.
func NewInstance(id string, grid *domain.Grid, cfg Config) *Instance {
	inst := &Instance{
		ID:       id,
		Grid:     grid,
		Outcome:  OutcomeRunning,
		Strategy: cfg.Strategy,
		MaxSteps: cfg.MaxSteps,
	}
	// Instance сам является Recorder-ом агента: все события
	// попадают в историю и в структурированный лог.
	inst.Courier = agent.NewCourier(grid, inst)
	return inst
}

// Plan строит начальный план. При недостижимой цели симуляция
// останавливается ДО первого шага (OutcomeNoPath).
func (i *Instance) Plan() bool {
	if !i.Courier.Plan(i.Strategy) {
		i.Outcome = OutcomeNoPath
		i.Record(domain.Event{Tick: 0, Type: domain.EventStuck, Pos: i.Courier.Pos})
		return false
	}
	i.remaining = i.Courier.Path[1:]

	// Вырожденный случай: старт совпадает с целью.
	if i.Courier.AtGoal() {
		i.Outcome = OutcomeArrived
		i.Record(domain.Event{Tick: 0, Type: domain.EventArrived, Pos: i.Courier.Pos})
	}
	return true
}

// Step продвигает симуляцию на один дискретный шаг.
// Возвращает true, пока симуляция продолжается.
//
// Порядок в точности повторяет контракт цикла исполнения:
// тик вперед -> проверка занятости следующей клетки -> либо шаг,
// либо синхронное репланирование (и шаг по новому плану).
func (i *Instance) Step() bool {
	if i.Outcome != OutcomeRunning {
		return false
	}

	i.Tick++

	if len(i.remaining) == 0 {
		// Путь кончился, а цели нет - тупик.
		i.Outcome = OutcomeDeadEnd
		i.Record(domain.Event{Tick: i.Tick, Type: domain.EventStuck, Pos: i.Courier.Pos})
		return false
	}

	next := i.remaining[0]

	if i.Grid.IsOccupied(next.Y, next.X, i.Tick) {
		blocked := next
		i.Record(domain.Event{
			Tick:    i.Tick,
			Type:    domain.EventConflict,
			Pos:     i.Courier.Pos,
			Blocked: &blocked,
		})

		// Одна попытка репланирования на конфликт, без тихих ретраев.
		if !i.Courier.CheckAndReplan(blocked, i.Tick) {
			i.Outcome = OutcomeStuck
			i.Record(domain.Event{Tick: i.Tick, Type: domain.EventStuck, Pos: i.Courier.Pos})
			return false
		}

		// Path[0] == текущая позиция, исполняем хвост нового плана.
		i.remaining = i.Courier.Path[1:]
		next = i.remaining[0]
	}

	i.Courier.MoveTo(next)
	i.remaining = i.remaining[1:]
	i.Record(domain.Event{Tick: i.Tick, Type: domain.EventMove, Pos: i.Courier.Pos})

	if i.Courier.AtGoal() {
		i.Outcome = OutcomeArrived
		i.Record(domain.Event{Tick: i.Tick, Type: domain.EventArrived, Pos: i.Courier.Pos})
		return false
	}

	if i.Tick >= i.MaxSteps {
		i.Outcome = OutcomeMaxSteps
		i.Record(domain.Event{Tick: i.Tick, Type: domain.EventStuck, Pos: i.Courier.Pos})
		return false
	}

	return true
}

// Run гонит симуляцию до завершения и возвращает итог.
// Начальный план должен быть построен заранее (Plan).
func (i *Instance) Run() Outcome {
	for i.Step() {
	}
	return i.Outcome
}
