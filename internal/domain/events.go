package domain

// EventType - тип диагностического события симуляции.
type EventType string

const (
	// EventPlan - построен начальный план.
	EventPlan EventType = "PLAN"
	// EventMove - агент сделал шаг.
	EventMove EventType = "MOVE"
	// EventConflict - следующая клетка плана оказалась занята.
	EventConflict EventType = "CONFLICT"
	// EventReplanOK - репланирование нашло новый путь.
	EventReplanOK EventType = "REPLAN_OK"
	// EventReplanFail - репланирование не нашло пути.
	EventReplanFail EventType = "REPLAN_FAIL"
	// EventArrived - агент достиг цели.
	EventArrived EventType = "ARRIVED"
	// EventStuck - агент остановлен (пути больше нет).
	EventStuck EventType = "STUCK"
)

// Event - структурированное диагностическое событие.
// Ядро не знает, куда оно уйдет: в logrus, в run-лог на диске
// или клиенту по websocket - это решают реализации Recorder.
type Event struct {
	Tick int       `json:"tick"`
	Type EventType `json:"type"`

	// Pos - позиция агента в момент события.
	Pos Position `json:"pos"`

	// Blocked - конфликтная клетка (только для CONFLICT).
	Blocked *Position `json:"blocked,omitempty"`

	// Cost и Nodes - метрики плана (для PLAN и REPLAN_OK).
	Cost  float64 `json:"cost,omitempty"`
	Nodes int     `json:"nodes,omitempty"`
}

// Recorder принимает диагностические события.
// Реализации обязаны быть дешевыми: ядро зовет Record синхронно.
type Recorder interface {
	Record(e Event)
}

// RecorderFunc - адаптер функции под интерфейс Recorder.
type RecorderFunc func(e Event)

func (f RecorderFunc) Record(e Event) { f(e) }

// NopRecorder отбрасывает события. Удобен в тестах и при выключенной диагностике.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}
