package gridmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"courier-server/internal/domain"
)

// Ошибки разбора файла карты. Дополняют ошибки конструирования
// из internal/domain (там - геометрия, здесь - синтаксис).
var (
	ErrNoStart           = errors.New("map must contain exactly one start cell 'S'")
	ErrNoGoal            = errors.New("map must contain exactly one goal cell 'G'")
	ErrDuplicateStart    = errors.New("map contains more than one start cell")
	ErrDuplicateGoal     = errors.New("map contains more than one goal cell")
	ErrBadToken          = errors.New("unknown map token")
	ErrBadObstacleRecord = errors.New("malformed dynamic obstacle record, want M(y,x,t)")
)

// Формат записи динамического препятствия: M(y,x,t).
// Клетка (y,x) занята строго на тике t.
var obstaclePattern = regexp.MustCompile(`^M\((\d+),(\d+),(\d+)\)$`)

// Parse читает текстовую карту и строит domain.Grid.
//
// Формат (построчно, пустые строки игнорируются):
//
//	S1129G   - клетки: цифра 1..9 = стоимость входа, '#' = стена,
//	#21#11     'S' = старт (стоимость 1), 'G' = цель (стоимость 1)
//	M(2,3,5) - динамическое препятствие: клетка (2,3) занята на тике 5
//
// Любая синтаксическая или геометрическая проблема - ошибка.
// Молчаливых дефолтов нет: без валидной карты сессия не стартует.
func Parse(r io.Reader) (*domain.Grid, error) {
	var (
		rows   [][]float64
		events []domain.ObstacleEvent

		start, goal       domain.Position
		hasStart, hasGoal bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Записи препятствий могут идти вперемешку со строками сетки.
		if strings.HasPrefix(line, "M(") {
			m := obstaclePattern.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%q: %w", line, ErrBadObstacleRecord)
			}
			y, _ := strconv.Atoi(m[1])
			x, _ := strconv.Atoi(m[2])
			t, _ := strconv.Atoi(m[3])
			events = append(events, domain.ObstacleEvent{
				Pos:  domain.Position{Y: y, X: x},
				Tick: t,
			})
			continue
		}

		y := len(rows)
		row := make([]float64, 0, len(line))
		for x, ch := range line {
			switch {
			case ch == 'S':
				if hasStart {
					return nil, ErrDuplicateStart
				}
				start = domain.Position{Y: y, X: x}
				hasStart = true
				row = append(row, 1)
			case ch == 'G':
				if hasGoal {
					return nil, ErrDuplicateGoal
				}
				goal = domain.Position{Y: y, X: x}
				hasGoal = true
				row = append(row, 1)
			case ch == '#':
				row = append(row, domain.Blocked)
			case ch >= '0' && ch <= '9':
				// '0' пройдет сюда и будет отвергнут в NewGrid:
				// нулевая стоимость ломает оптимальность поиска.
				row = append(row, float64(ch-'0'))
			default:
				return nil, fmt.Errorf("char %q at (%d, %d): %w", string(ch), y, x, ErrBadToken)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}

	if !hasStart {
		return nil, ErrNoStart
	}
	if !hasGoal {
		return nil, ErrNoGoal
	}

	return domain.NewGrid(rows, start, goal, events)
}

// Load открывает файл карты и разбирает его.
func Load(path string) (*domain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return g, nil
}
