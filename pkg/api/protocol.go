package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" сессии симуляции плюс дельту
// диагностических событий с прошлого снимка.
type ServerResponse struct {
	// Type тип сообщения: "STATE" или "ERROR".
	Type string `json:"type"`

	// SessionID ID сессии, к которой относится снимок.
	SessionID string `json:"sessionId,omitempty"`

	// Tick текущее дискретное время симуляции.
	Tick int `json:"tick"`

	// Outcome итог симуляции: RUNNING / ARRIVED / NO_PATH / STUCK / ...
	Outcome string `json:"outcome,omitempty"`

	// Grid метаданные о размере карты, старте и цели.
	Grid *GridMeta `json:"grid,omitempty"`

	// Cells срез всех клеток карты. Отправляется один раз при LOAD:
	// карта неизменяемая, гонять её каждый тик незачем.
	Cells []CellView `json:"cells,omitempty"`

	// Obstacles таблица динамических препятствий (тоже только при LOAD).
	Obstacles []ObstacleView `json:"obstacles,omitempty"`

	// Agent текущее состояние агента.
	Agent *AgentView `json:"agent,omitempty"`

	// Events новые диагностические события с прошлого снимка.
	Events []EventView `json:"events,omitempty"`

	// Error текст ошибки (только для Type == "ERROR").
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int          `json:"w"`
	Height int          `json:"h"`
	Start  PositionView `json:"start"`
	Goal   PositionView `json:"goal"`
}

// PositionView - координата клетки в DTO.
type PositionView struct {
	Y int `json:"y"`
	X int `json:"x"`
}

// CellView это DTO для одной клетки карты.
type CellView struct {
	Y int `json:"y"`
	X int `json:"x"`

	// Cost стоимость входа. Для стен поле опускается:
	// +Inf в JSON не живет, признак стены - IsWall.
	Cost float64 `json:"cost,omitempty"`

	// IsWall true, если клетка - статическое препятствие.
	IsWall bool `json:"isWall,omitempty"`
}

// ObstacleView это DTO для динамического препятствия.
type ObstacleView struct {
	Y int `json:"y"`
	X int `json:"x"`
	T int `json:"t"`
}

// AgentView это DTO состояния агента.
type AgentView struct {
	Pos PositionView `json:"pos"`

	// Path закоммиченный путь (целиком). Пустой, если плана нет.
	Path []PositionView `json:"path,omitempty"`

	// HasPath отличает "план пуст" от "стоимость 0".
	HasPath bool `json:"hasPath"`

	// PathCost стоимость закоммиченного пути.
	PathCost float64 `json:"pathCost,omitempty"`

	// NodesExpanded число раскрытий узлов последнего поиска.
	NodesExpanded int `json:"nodesExpanded,omitempty"`
}

// EventView это DTO диагностического события.
type EventView struct {
	Tick    int           `json:"tick"`
	Type    string        `json:"type"`
	Pos     PositionView  `json:"pos"`
	Blocked *PositionView `json:"blocked,omitempty"`
	Cost    float64       `json:"cost,omitempty"`
	Nodes   int           `json:"nodes,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: LOAD, PLAN, STEP, RUN, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// LoadPayload используется для LOAD: либо готовый текст карты,
// либо параметры генерации случайной карты.
type LoadPayload struct {
	// Map текст карты в формате pkg/gridmap. Если пуст - генерируем.
	Map string `json:"map,omitempty"`

	// Параметры генератора (используются только при пустом Map).
	Seed    int64 `json:"seed,omitempty"`
	Width   int   `json:"width,omitempty"`
	Height  int   `json:"height,omitempty"`
	Dynamic int   `json:"dynamic,omitempty"`
}

// PlanPayload используется для PLAN.
type PlanPayload struct {
	// Algorithm: "ucs" или "a_star". Пустое значение = "a_star".
	Algorithm string `json:"algorithm,omitempty"`
}

// StepPayload используется для STEP.
type StepPayload struct {
	// Count сколько шагов симулировать за раз. 0 = 1.
	Count int `json:"count,omitempty"`
}
