package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"courier-server/internal/agent"
	"courier-server/internal/network"
	"courier-server/pkg/api"
	"courier-server/pkg/gridmap"
	"courier-server/pkg/logger"
	"courier-server/pkg/utils"
)

// Service владеет всеми активными сессиями симуляции и обслуживает
// команды клиентов. Каждый websocket-клиент работает со СВОЕЙ сессией;
// между сессиями ничего не разделяется, кроме конфига.
type Service struct {
	mu        sync.RWMutex
	Config    Config
	Instances map[string]*Instance

	// Hub рассылает снимки подписчикам (websocket-клиентам).
	Hub *network.Broadcaster

	// sent[id] - сколько событий сессии уже ушло клиенту.
	// Следующий снимок несет только дельту.
	sent map[string]int
}

func NewService(cfg Config) *Service {
	return &Service{
		Config:    cfg,
		Instances: make(map[string]*Instance),
		Hub:       network.NewBroadcaster(),
		sent:      make(map[string]int),
	}
}

// CreateFromText разбирает текст карты и создает сессию.
func (s *Service) CreateFromText(mapText string) (*Instance, error) {
	grid, err := gridmap.Parse(strings.NewReader(mapText))
	if err != nil {
		return nil, err
	}

	inst := NewInstance(utils.GenerateID(), grid, s.Config)

	s.mu.Lock()
	s.Instances[inst.ID] = inst
	s.mu.Unlock()

	logger.Log.WithField("instance", inst.ID).Infof("Session created: %dx%d grid", grid.Height, grid.Width)
	return inst, nil
}

// CreateFromFile загружает карту из файла и создает сессию.
func (s *Service) CreateFromFile(path string) (*Instance, error) {
	grid, err := gridmap.Load(path)
	if err != nil {
		return nil, err
	}

	inst := NewInstance(utils.GenerateID(), grid, s.Config)

	s.mu.Lock()
	s.Instances[inst.ID] = inst
	s.mu.Unlock()

	logger.Log.WithField("instance", inst.ID).Infof("Session created from %s", path)
	return inst, nil
}

// Get возвращает сессию по ID (nil, если нет).
func (s *Service) Get(id string) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Instances[id]
}

// ForEach вызывает fn для каждой активной сессии под read-локом.
func (s *Service) ForEach(fn func(*Instance)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inst := range s.Instances {
		fn(inst)
	}
}

// Remove удаляет сессию (клиент отключился).
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Instances, id)
	delete(s.sent, id)
}

// ProcessCommand - главный метод обработки команд клиента.
// Команды одной сессии обрабатываются последовательно (их шлет один
// readPump), поэтому сам Instance не нуждается в своем мьютексе.
func (s *Service) ProcessCommand(sessionID string, cmd api.ClientCommand) api.ServerResponse {
	switch cmd.Action {
	case "LOAD":
		return s.handleLoad(sessionID, cmd.Payload)
	case "PLAN":
		return s.handlePlan(sessionID, cmd.Payload)
	case "STEP":
		return s.handleStep(sessionID, cmd.Payload)
	case "RUN":
		return s.handleRun(sessionID)
	case "RESET":
		return s.handleReset(sessionID)
	default:
		return errorResponse(sessionID, fmt.Sprintf("unknown action %q", cmd.Action))
	}
}

func (s *Service) handleLoad(sessionID string, payload json.RawMessage) api.ServerResponse {
	var p api.LoadPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errorResponse(sessionID, "bad LOAD payload: "+err.Error())
	}
	if err := p.Validate(); err != nil {
		return errorResponse(sessionID, err.Error())
	}

	mapText := p.Map
	if mapText == "" {
		// Карта не прислана - генерируем по параметрам.
		cfg := gridmap.NewGenConfig(s.Config.Seed)
		if p.Seed != 0 {
			cfg.Seed = p.Seed
		}
		if p.Width != 0 {
			cfg.Width = p.Width
		}
		if p.Height != 0 {
			cfg.Height = p.Height
		}
		cfg.Dynamic = p.Dynamic
		mapText = gridmap.Generate(cfg)
	}

	// Повторный LOAD пересоздает сессию клиента.
	s.dropSession(sessionID)

	grid, err := gridmap.Parse(strings.NewReader(mapText))
	if err != nil {
		return errorResponse(sessionID, err.Error())
	}

	inst := NewInstance(sessionID, grid, s.Config)

	s.mu.Lock()
	s.Instances[sessionID] = inst
	s.mu.Unlock()

	// Первый снимок несет карту целиком.
	return s.snapshot(inst, true)
}

func (s *Service) handlePlan(sessionID string, payload json.RawMessage) api.ServerResponse {
	inst := s.Get(sessionID)
	if inst == nil {
		return errorResponse(sessionID, "no map loaded")
	}

	var p api.PlanPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return errorResponse(sessionID, "bad PLAN payload: "+err.Error())
		}
	}
	if err := p.Validate(); err != nil {
		return errorResponse(sessionID, err.Error())
	}

	if p.Algorithm != "" {
		inst.Strategy = agent.Strategy(p.Algorithm)
	}
	inst.Plan()

	return s.snapshot(inst, false)
}

func (s *Service) handleStep(sessionID string, payload json.RawMessage) api.ServerResponse {
	inst := s.Get(sessionID)
	if inst == nil {
		return errorResponse(sessionID, "no map loaded")
	}

	var p api.StepPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return errorResponse(sessionID, "bad STEP payload: "+err.Error())
		}
	}
	if err := p.Validate(); err != nil {
		return errorResponse(sessionID, err.Error())
	}

	count := p.Count
	if count == 0 {
		count = 1
	}
	for n := 0; n < count; n++ {
		if !inst.Step() {
			break
		}
	}

	return s.snapshot(inst, false)
}

// handleRun гонит симуляцию до конца, транслируя снимок КАЖДОГО тика
// через хаб: клиент видит движение агента и репланирования вживую.
func (s *Service) handleRun(sessionID string) api.ServerResponse {
	inst := s.Get(sessionID)
	if inst == nil {
		return errorResponse(sessionID, "no map loaded")
	}

	for inst.Step() {
		s.Hub.SendTo(sessionID, s.snapshot(inst, false))
	}

	return s.snapshot(inst, false)
}

func (s *Service) handleReset(sessionID string) api.ServerResponse {
	inst := s.Get(sessionID)
	if inst == nil {
		return errorResponse(sessionID, "no map loaded")
	}

	// Та же карта, чистое состояние.
	fresh := NewInstance(sessionID, inst.Grid, s.Config)
	fresh.Strategy = inst.Strategy

	s.mu.Lock()
	s.Instances[sessionID] = fresh
	s.sent[sessionID] = 0
	s.mu.Unlock()

	return s.snapshot(fresh, true)
}

func (s *Service) dropSession(sessionID string) {
	s.mu.Lock()
	delete(s.Instances, sessionID)
	s.sent[sessionID] = 0
	s.mu.Unlock()
}

// snapshot строит ответ и сдвигает курсор отправленных событий.
func (s *Service) snapshot(inst *Instance, withMap bool) api.ServerResponse {
	s.mu.Lock()
	from := s.sent[inst.ID]
	s.sent[inst.ID] = len(inst.Events)
	s.mu.Unlock()

	return BuildResponse(inst, withMap, from)
}

func errorResponse(sessionID, msg string) api.ServerResponse {
	return api.ServerResponse{
		Type:      "ERROR",
		SessionID: sessionID,
		Error:     msg,
	}
}
