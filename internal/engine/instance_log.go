package engine

import (
	"courier-server/internal/domain"
	"courier-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Record добавляет событие в историю инстанса и дублирует его
// в структурированный лог. Instance реализует domain.Recorder,
// поэтому агент и репланировщик пишут сюда, не зная про logrus.
func (i *Instance) Record(e domain.Event) {
	i.Events = append(i.Events, e)

	fields := logrus.Fields{
		"instance":  i.ID,
		"component": "simulation",
		"tick":      e.Tick,
		"event":     string(e.Type),
		"pos":       e.Pos.String(),
	}
	if e.Blocked != nil {
		fields["blocked"] = e.Blocked.String()
	}
	if e.Type == domain.EventPlan || e.Type == domain.EventReplanOK {
		fields["cost"] = e.Cost
		fields["nodes"] = e.Nodes
	}

	entry := logger.Log.WithFields(fields)
	switch e.Type {
	case domain.EventConflict, domain.EventReplanFail, domain.EventStuck:
		entry.Warn("Simulation event")
	default:
		entry.Info("Simulation event")
	}
}

// EventsSince возвращает события начиная с индекса from.
// Сервер шлет клиенту только дельту, а не всю историю каждый тик.
func (i *Instance) EventsSince(from int) []domain.Event {
	if from < 0 || from >= len(i.Events) {
		return nil
	}
	return i.Events[from:]
}
