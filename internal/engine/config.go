package engine

import (
	"time"

	"courier-server/internal/agent"
)

// Config хранит параметры запуска симуляции.
type Config struct {
	// Seed - сид для генератора случайных карт (когда карта не задана файлом).
	Seed int64

	// Strategy - алгоритм начального планирования.
	// Репланирование всегда идет через A*, независимо от этого поля.
	Strategy agent.Strategy

	// MaxSteps - защитная граница на число симулируемых шагов.
	// На решаемых картах не достигается и наблюдаемое поведение не меняет.
	MaxSteps int
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		Strategy: agent.StrategyAStar,
		MaxSteps: 10000,
	}
}
