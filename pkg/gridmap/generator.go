package gridmap

import (
	"fmt"
	"math/rand"
	"strings"
)

// Параметры генерации по умолчанию.
const (
	DefaultWidth  = 20
	DefaultHeight = 12
	// Доля стен. Коридор до цели прорезается всегда,
	// так что карта остается решаемой при любой плотности.
	DefaultWallChance = 0.25
	DefaultMaxCost    = 4
)

// GenConfig - параметры генератора случайных карт.
type GenConfig struct {
	Width, Height int
	Seed          int64
	WallChance    float64 // вероятность стены в клетке, 0..1
	MaxCost       int     // стоимости клеток равномерно из 1..MaxCost
	Dynamic       int     // сколько динамических препятствий добавить
}

// NewGenConfig возвращает конфиг по умолчанию с заданным сидом.
func NewGenConfig(seed int64) GenConfig {
	return GenConfig{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Seed:       seed,
		WallChance: DefaultWallChance,
		MaxCost:    DefaultMaxCost,
	}
}

// Generate создает текст случайной карты в формате Parse.
// Один сид - одна и та же карта: генератор полностью детерминирован.
//
// Старт всегда в левом верхнем углу, цель в правом нижнем.
// Вдоль верхнего ряда и правого столбца прорезается гарантированный
// коридор, поэтому сгенерированная карта всегда решаема.
func Generate(cfg GenConfig) string {
	if cfg.Width < 2 {
		cfg.Width = 2
	}
	if cfg.Height < 2 {
		cfg.Height = 2
	}
	if cfg.MaxCost < 1 {
		cfg.MaxCost = 1
	}
	if cfg.MaxCost > 9 {
		cfg.MaxCost = 9 // формат карты - одна цифра на клетку
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	cell := func() byte {
		if rng.Float64() < cfg.WallChance {
			return '#'
		}
		return byte('1' + rng.Intn(cfg.MaxCost))
	}

	grid := make([][]byte, cfg.Height)
	for y := range grid {
		grid[y] = make([]byte, cfg.Width)
		for x := range grid[y] {
			grid[y][x] = cell()
		}
	}

	// Гарантированный коридор: верхний ряд + правый столбец.
	for x := 0; x < cfg.Width; x++ {
		if grid[0][x] == '#' {
			grid[0][x] = '1'
		}
	}
	for y := 0; y < cfg.Height; y++ {
		if grid[y][cfg.Width-1] == '#' {
			grid[y][cfg.Width-1] = '1'
		}
	}

	grid[0][0] = 'S'
	grid[cfg.Height-1][cfg.Width-1] = 'G'

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}

	// Динамические препятствия: случайные свободные клетки,
	// тики в пределах разумной длины маршрута.
	maxTick := cfg.Width + cfg.Height
	for i := 0; i < cfg.Dynamic; i++ {
		y := rng.Intn(cfg.Height)
		x := rng.Intn(cfg.Width)
		if grid[y][x] == '#' || grid[y][x] == 'S' || grid[y][x] == 'G' {
			continue // пропуск лучше бесконечного перебора
		}
		t := 1 + rng.Intn(maxTick)
		fmt.Fprintf(&b, "M(%d,%d,%d)\n", y, x, t)
	}

	return b.String()
}
