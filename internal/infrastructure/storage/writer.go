package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"courier-server/internal/domain"
)

// RunLogService пишет и читает run-логи симуляций.
//
// Формат текстовый, построчный: "[тик] сообщение". Внешние инструменты
// (визуализатор) разбирают его по тем же шаблонам, что и Load ниже,
// поэтому грамматика строк - часть контракта, менять осторожно.
type RunLogService struct {
	SaveDir string
}

func NewRunLogService(dir string) *RunLogService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &RunLogService{SaveDir: dir}
}

// Save пишет историю событий сессии в файл run_<id>.log.
// Возвращает путь к записанному файлу.
func (s *RunLogService) Save(id string, events []domain.Event) (string, error) {
	path := filepath.Join(s.SaveDir, fmt.Sprintf("run_%s.log", id))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range events {
		if _, err := w.WriteString(FormatEvent(e) + "\n"); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// FormatEvent превращает событие в строку run-лога.
func FormatEvent(e domain.Event) string {
	switch e.Type {
	case domain.EventPlan:
		return fmt.Sprintf("[%d] Agent starts at %s with planned cost: %g", e.Tick, e.Pos, e.Cost)
	case domain.EventMove:
		return fmt.Sprintf("[%d] Agent moves to %s", e.Tick, e.Pos)
	case domain.EventConflict:
		return fmt.Sprintf("[%d] Obstacle detected at planned position %s. Current position: %s.", e.Tick, e.Blocked, e.Pos)
	case domain.EventReplanOK:
		return fmt.Sprintf("[%d] Replanning successful. New path found with cost: %g", e.Tick, e.Cost)
	case domain.EventReplanFail:
		return fmt.Sprintf("[%d] Replanning failed. No new path found.", e.Tick)
	case domain.EventArrived:
		return fmt.Sprintf("[%d] Agent reached the goal at %s", e.Tick, e.Pos)
	case domain.EventStuck:
		return fmt.Sprintf("[%d] Agent is stuck at %s. No further path available.", e.Tick, e.Pos)
	default:
		return fmt.Sprintf("[%d] %s at %s", e.Tick, e.Type, e.Pos)
	}
}
