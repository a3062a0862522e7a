package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Лимит на размер карты от клиента: защищаемся от случайной
// загрузки мегабайтного файла через websocket.
const maxMapBytes = 64 * 1024

func (p LoadPayload) Validate() error {
	if len(p.Map) > maxMapBytes {
		return errors.New("map text too large")
	}
	if p.Map == "" {
		// Режим генерации: размеры в разумных пределах.
		if p.Width < 0 || p.Width > 256 || p.Height < 0 || p.Height > 256 {
			return errors.New("generated map dimensions out of range")
		}
		if p.Dynamic < 0 || p.Dynamic > 1024 {
			return errors.New("dynamic obstacle count out of range")
		}
	}
	return nil
}

func (p PlanPayload) Validate() error {
	switch p.Algorithm {
	case "", "ucs", "a_star":
		return nil
	}
	return errors.New("algorithm must be 'ucs' or 'a_star'")
}

func (p StepPayload) Validate() error {
	if p.Count < 0 || p.Count > 1000 {
		return errors.New("step count out of range")
	}
	return nil
}
