package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"courier-server/internal/domain"
)

// Шаблоны строк run-лога. Один-в-один с FormatEvent.
var (
	rePlan       = regexp.MustCompile(`^\[(\d+)\] Agent starts at \((\d+), (\d+)\) with planned cost: (\S+)$`)
	reMove       = regexp.MustCompile(`^\[(\d+)\] Agent moves to \((\d+), (\d+)\)$`)
	reConflict   = regexp.MustCompile(`^\[(\d+)\] Obstacle detected at planned position \((\d+), (\d+)\)\. Current position: \((\d+), (\d+)\)\.$`)
	reReplanOK   = regexp.MustCompile(`^\[(\d+)\] Replanning successful\. New path found with cost: (\S+)$`)
	reReplanFail = regexp.MustCompile(`^\[(\d+)\] Replanning failed\. No new path found\.$`)
	reArrived    = regexp.MustCompile(`^\[(\d+)\] Agent reached the goal at \((\d+), (\d+)\)$`)
	reStuck      = regexp.MustCompile(`^\[(\d+)\] Agent is stuck at \((\d+), (\d+)\)\. No further path available\.$`)
)

// Load читает run-лог из файла.
func (s *RunLogService) Load(path string) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readEvents(f)
}

// readEvents восстанавливает события из текста лога.
//
// Восстанавливается структурная часть: тик, тип, позиции, стоимость.
// NodesExpanded в лог не пишется (чисто диагностическая метрика),
// после чтения поле остается нулевым.
func readEvents(r io.Reader) ([]domain.Event, error) {
	var events []domain.Event

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		e, ok := parseLine(line)
		if !ok {
			return nil, fmt.Errorf("line %d: unrecognized run log entry: %q", lineNo, line)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func parseLine(line string) (domain.Event, bool) {
	if m := rePlan.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventPlan,
			Pos:  domain.Position{Y: atoi(m[2]), X: atoi(m[3])},
			Cost: atof(m[4]),
		}, true
	}
	if m := reMove.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventMove,
			Pos:  domain.Position{Y: atoi(m[2]), X: atoi(m[3])},
		}, true
	}
	if m := reConflict.FindStringSubmatch(line); m != nil {
		blocked := domain.Position{Y: atoi(m[2]), X: atoi(m[3])}
		return domain.Event{
			Tick:    atoi(m[1]),
			Type:    domain.EventConflict,
			Pos:     domain.Position{Y: atoi(m[4]), X: atoi(m[5])},
			Blocked: &blocked,
		}, true
	}
	if m := reReplanOK.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventReplanOK,
			Cost: atof(m[2]),
		}, true
	}
	if m := reReplanFail.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventReplanFail,
		}, true
	}
	if m := reArrived.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventArrived,
			Pos:  domain.Position{Y: atoi(m[2]), X: atoi(m[3])},
		}, true
	}
	if m := reStuck.FindStringSubmatch(line); m != nil {
		return domain.Event{
			Tick: atoi(m[1]),
			Type: domain.EventStuck,
			Pos:  domain.Position{Y: atoi(m[2]), X: atoi(m[3])},
		}, true
	}
	return domain.Event{}, false
}

// Сабматчи шаблонов всегда валидные числа, ошибки невозможны.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
