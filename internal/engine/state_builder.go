package engine

import (
	"courier-server/internal/domain"
	"courier-server/pkg/api"
)

// BuildResponse собирает DTO-снимок сессии для клиента.
// withMap = true добавляет полную карту (нужно один раз, при LOAD/RESET:
// сетка неизменяемая). eventsFrom - индекс первого еще не отправленного
// события.
func BuildResponse(inst *Instance, withMap bool, eventsFrom int) api.ServerResponse {
	resp := api.ServerResponse{
		Type:      "STATE",
		SessionID: inst.ID,
		Tick:      inst.Tick,
		Outcome:   string(inst.Outcome),
		Agent:     buildAgentView(inst),
		Events:    buildEventViews(inst.EventsSince(eventsFrom)),
	}

	if withMap {
		resp.Grid = &api.GridMeta{
			Width:  inst.Grid.Width,
			Height: inst.Grid.Height,
			Start:  pos(inst.Grid.Start),
			Goal:   pos(inst.Grid.Goal),
		}
		resp.Cells = buildCellViews(inst.Grid)
		resp.Obstacles = buildObstacleViews(inst.Grid)
	}

	return resp
}

func buildCellViews(g *domain.Grid) []api.CellView {
	cells := make([]api.CellView, 0, g.Height*g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cv := api.CellView{Y: y, X: x}
			if g.IsValid(y, x) {
				cv.Cost = g.Cost(y, x)
			} else {
				// Стоимость стены - +Inf, в JSON её не кладем.
				cv.IsWall = true
			}
			cells = append(cells, cv)
		}
	}
	return cells
}

func buildObstacleViews(g *domain.Grid) []api.ObstacleView {
	events := g.DynamicObstacles()
	out := make([]api.ObstacleView, 0, len(events))
	for _, ev := range events {
		out = append(out, api.ObstacleView{Y: ev.Pos.Y, X: ev.Pos.X, T: ev.Tick})
	}
	return out
}

func buildAgentView(inst *Instance) *api.AgentView {
	av := &api.AgentView{Pos: pos(inst.Courier.Pos)}

	if len(inst.Courier.Path) > 0 {
		av.HasPath = true
		av.PathCost = inst.Courier.PathCost
		av.NodesExpanded = inst.Courier.NodesExpanded
		av.Path = make([]api.PositionView, 0, len(inst.Courier.Path))
		for _, p := range inst.Courier.Path {
			av.Path = append(av.Path, pos(p))
		}
	}
	return av
}

func buildEventViews(events []domain.Event) []api.EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]api.EventView, 0, len(events))
	for _, e := range events {
		ev := api.EventView{
			Tick:  e.Tick,
			Type:  string(e.Type),
			Pos:   pos(e.Pos),
			Nodes: e.Nodes,
		}
		if e.Blocked != nil {
			b := pos(*e.Blocked)
			ev.Blocked = &b
		}
		// Cost события бывает +Inf (REPLAN_FAIL) - такие не сериализуем.
		if e.Type == domain.EventPlan || e.Type == domain.EventReplanOK {
			ev.Cost = e.Cost
		}
		out = append(out, ev)
	}
	return out
}

func pos(p domain.Position) api.PositionView {
	return api.PositionView{Y: p.Y, X: p.X}
}
