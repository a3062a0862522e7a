package gridmap

import (
	"errors"
	"strings"
	"testing"

	"courier-server/internal/domain"
)

func TestParse_SmallMap(t *testing.T) {
	src := strings.Join([]string{
		"S12",
		"#21",
		"11G",
		"M(1,2,4)",
		"",
	}, "\n")

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if g.Height != 3 || g.Width != 3 {
		t.Errorf("size = %dx%d, want 3x3", g.Height, g.Width)
	}
	if g.Start != (domain.Position{Y: 0, X: 0}) {
		t.Errorf("start = %v, want (0, 0)", g.Start)
	}
	if g.Goal != (domain.Position{Y: 2, X: 2}) {
		t.Errorf("goal = %v, want (2, 2)", g.Goal)
	}

	// Стоимости и стены.
	if c := g.Cost(0, 1); c != 1 {
		t.Errorf("Cost(0,1) = %v, want 1", c)
	}
	if c := g.Cost(1, 1); c != 2 {
		t.Errorf("Cost(1,1) = %v, want 2", c)
	}
	if g.IsValid(1, 0) {
		t.Error("IsValid(1,0) = true, want false ('#')")
	}
	// S и G входят со стоимостью 1.
	if c := g.Cost(0, 0); c != 1 {
		t.Errorf("Cost(start) = %v, want 1", c)
	}

	// Динамическое препятствие строго на своем тике.
	if !g.IsOccupied(1, 2, 4) {
		t.Error("IsOccupied(1,2,4) = false, want true")
	}
	if g.IsOccupied(1, 2, 3) || g.IsOccupied(1, 2, 5) {
		t.Error("dynamic obstacle leaked to neighbouring ticks")
	}
}

func TestParse_ObstaclesBeforeGrid(t *testing.T) {
	// Записи M(...) могут стоять до строк сетки - порядок не важен.
	src := "M(0,1,2)\nS1\n1G\n"

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !g.IsOccupied(0, 1, 2) {
		t.Error("obstacle parsed before grid was lost")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"empty input", "", ErrNoStart},
		{"blank lines only", "\n\n  \n", ErrNoStart},
		{"no goal", "S1\n11\n", ErrNoGoal},
		{"duplicate start", "SS\n1G\n", ErrDuplicateStart},
		{"duplicate goal", "SG\n1G\n", ErrDuplicateGoal},
		{"unknown token", "S?\n1G\n", ErrBadToken},
		{"ragged rows", "S11\n1G\n", domain.ErrNotRectangular},
		{"zero cost token", "S0\n1G\n", domain.ErrBadCost},
		{"malformed obstacle", "S1\n1G\nM(1,2)\n", ErrBadObstacleRecord},
		{"obstacle out of bounds", "S1\n1G\nM(5,5,1)\n", domain.ErrBadObstacle},
		{"start walled in is fine at parse time", "S#\n#G\n", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	cfg := NewGenConfig(42)
	cfg.Dynamic = 5

	text := Generate(cfg)

	g, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("generated map does not parse: %v\n%s", err, text)
	}
	if g.Height != cfg.Height || g.Width != cfg.Width {
		t.Errorf("size = %dx%d, want %dx%d", g.Height, g.Width, cfg.Height, cfg.Width)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(NewGenConfig(7))
	b := Generate(NewGenConfig(7))
	if a != b {
		t.Error("same seed produced different maps")
	}
	c := Generate(NewGenConfig(8))
	if a == c {
		t.Error("different seeds produced identical maps")
	}
}

func TestGenerate_AlwaysSolvable(t *testing.T) {
	// Коридор прорезается даже при максимальной плотности стен.
	cfg := NewGenConfig(3)
	cfg.WallChance = 1.0

	g, err := Parse(strings.NewReader(Generate(cfg)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Верхний ряд и правый столбец свободны.
	for x := 0; x < g.Width; x++ {
		if !g.IsValid(0, x) {
			t.Fatalf("corridor cell (0,%d) is blocked", x)
		}
	}
	for y := 0; y < g.Height; y++ {
		if !g.IsValid(y, g.Width-1) {
			t.Fatalf("corridor cell (%d,%d) is blocked", y, g.Width-1)
		}
	}
}
