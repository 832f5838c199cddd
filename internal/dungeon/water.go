package dungeon

import (
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/vec"
)

const defaultSamplingAttempts = 1000

// maxExtraRiverLinks верхняя граница дополнительных соединений реки
const maxExtraRiverLinks = 3

// WaterResult результат работы генератора воды
type WaterResult struct {
	Target     int // сколько точек воды планировалось
	Points     []vec.Vec2
	Rivers     []Connection
	Ponds      [][]vec.Vec2
	ExtraLinks int
}

// WaterFeatureGenerator прокладывает реки и выращивает пруды поверх готового пола
type WaterFeatureGenerator struct {
	grid   *Grid
	params Params
	rng    *rand.Rand
	logger *logging.Logger
	pf     *Pathfinder
	target int
}

// NewWaterFeatureGenerator создаёт генератор воды. Реки идут по Floor, Door и Water.
func NewWaterFeatureGenerator(grid *Grid, params Params, rng *rand.Rand, logger *logging.Logger) *WaterFeatureGenerator {
	return &WaterFeatureGenerator{
		grid:   grid,
		params: params,
		rng:    rng,
		logger: logger,
		pf:     NewPathfinder(grid, RiverTiles(), logger),
	}
}

// Fallbacks число участков реки, построенных Г-образным путём
func (w *WaterFeatureGenerator) Fallbacks() int {
	return w.pf.Fallbacks
}

// Generate выбирает точки, прокладывает реку и выращивает пруды
func (w *WaterFeatureGenerator) Generate() WaterResult {
	res := WaterResult{Points: w.SamplePoints()}
	res.Target = w.target
	res.Rivers, res.ExtraLinks = w.CarveRivers(res.Points)
	res.Ponds = w.GrowPonds(res.Points)
	return res
}

// SamplePoints выбирает точки воды среди клеток пола.
// Каждая новая точка не ближе MinDistanceBetweenPoints ко всем принятым
// и не дальше MaxDistanceBetweenPoints хотя бы от одной из них.
func (w *WaterFeatureGenerator) SamplePoints() []vec.Vec2 {
	w.target = 0
	floors := w.grid.Coords(TileFloor)
	if len(floors) == 0 || w.params.MaxWaterPoints <= 0 {
		return nil
	}

	target := randRange(w.rng, w.params.MinWaterPoints, w.params.MaxWaterPoints)
	w.target = target
	attempts := w.params.MaxSamplingAttempts
	if attempts <= 0 {
		attempts = defaultSamplingAttempts
	}

	points := make([]vec.Vec2, 0, target)
	for attempt := 0; attempt < attempts && len(points) < target; attempt++ {
		candidate := floors[w.rng.Intn(len(floors))]
		if w.acceptPoint(candidate, points) {
			points = append(points, candidate)
		}
	}

	if len(points) < target {
		w.logger.Warn("выбрано %d точек воды из %d за %d попыток", len(points), target, attempts)
	}
	return points
}

func (w *WaterFeatureGenerator) acceptPoint(candidate vec.Vec2, points []vec.Vec2) bool {
	near := false
	for _, p := range points {
		if p == candidate {
			return false
		}
		d := candidate.DistanceTo(p)
		if d < w.params.MinDistanceBetweenPoints {
			return false
		}
		if d <= w.params.MaxDistanceBetweenPoints {
			near = true
		}
	}
	return len(points) == 0 || near
}

// CarveRivers связывает точки цепочкой ближайших соседей и превращает пути в воду.
// Затем добавляет несколько случайных соединений между близкими точками.
func (w *WaterFeatureGenerator) CarveRivers(points []vec.Vec2) ([]Connection, int) {
	n := len(points)
	if n < 2 {
		return nil, 0
	}

	var rivers []Connection
	visited := make([]bool, n)
	visited[0] = true
	current := 0

	for step := 1; step < n; step++ {
		next, best := -1, math.Inf(1)
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := points[current].DistanceTo(p); d < best {
				next, best = i, d
			}
		}

		visited[next] = true
		if c, ok := w.carve(points[current], points[next]); ok {
			rivers = append(rivers, c)
		}
		current = next
	}

	extraLinks := 0
	extra := w.rng.Intn(min(n/2, maxExtraRiverLinks) + 1)
	limit := 1.5 * w.params.MaxDistanceBetweenPoints
	for i := 0; i < extra; i++ {
		a, b := w.rng.Intn(n), w.rng.Intn(n)
		if a == b || points[a].DistanceTo(points[b]) > limit {
			continue
		}
		if c, ok := w.carve(points[a], points[b]); ok {
			rivers = append(rivers, c)
			extraLinks++
		}
	}

	return rivers, extraLinks
}

// carve прокладывает один участок реки
func (w *WaterFeatureGenerator) carve(from, to vec.Vec2) (Connection, bool) {
	path, _ := w.pf.FindCorridor(from, to)
	if path == nil {
		w.logger.Warn("участок реки %v -> %v не построен", from, to)
		return Connection{}, false
	}
	w.markPathAsWater(path)
	return Connection{Kind: ConnectionRiver, From: from, To: to, Path: path, RoomA: -1, RoomB: -1}, true
}

// markPathAsWater превращает пол и двери пути в воду; прочие клетки не трогает
func (w *WaterFeatureGenerator) markPathAsWater(path []vec.Vec2) {
	for _, p := range path {
		t := w.grid.TileAt(p)
		if t != nil && (t.Type == TileFloor || t.Type == TileDoor) {
			t.Type = TileWater
		}
	}
}

// FloorTilesNear считает клетки пола в манхэттенском радиусе от центра
func (w *WaterFeatureGenerator) FloorTilesNear(center vec.Vec2, radius int) int {
	count := 0
	for dz := -radius; dz <= radius; dz++ {
		span := radius - abs(dz)
		for dx := -span; dx <= span; dx++ {
			if tt, ok := w.grid.TypeAt(vec.Vec2{X: center.X + dx, Y: center.Y + dz}); ok && tt == TileFloor {
				count++
			}
		}
	}
	return count
}

// GrowPonds выращивает пруды в точках, вокруг которых достаточно пола
func (w *WaterFeatureGenerator) GrowPonds(points []vec.Vec2) [][]vec.Vec2 {
	if !w.params.EnablePonds {
		return nil
	}

	var ponds [][]vec.Vec2
	for _, p := range points {
		if w.FloorTilesNear(p, w.params.PondRadius) < w.params.MinFloorTilesForPond {
			continue
		}
		pond := w.growPond(p)
		for _, c := range pond {
			w.grid.SetType(c.X, c.Y, TileWater)
		}
		ponds = append(ponds, pond)
		w.logger.Debug("пруд в %v: %d клеток", p, len(pond))
	}
	return ponds
}

// growPond случайно разрастается от центра по 8 направлениям,
// не выходя за манхэттенский радиус PondRadius.
func (w *WaterFeatureGenerator) growPond(center vec.Vec2) []vec.Vec2 {
	target := randRange(w.rng, w.params.MinPondSize, w.params.MaxPondSize)
	radius := w.params.PondRadius

	claimed := mapset.New[vec.Vec2]()
	claimed.Put(center)
	pond := []vec.Vec2{center}
	frontier := []vec.Vec2{center}

	for len(pond) < target && len(frontier) > 0 {
		i := w.rng.Intn(len(frontier))
		cell := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for _, d := range vec.Neighborhood8 {
			if len(pond) >= target {
				break
			}
			next := cell.Add(d)
			if claimed.Has(next) || next.Manhattan(center) > radius {
				continue
			}
			if tt, ok := w.grid.TypeAt(next); !ok || (tt != TileFloor && tt != TileDoor) {
				continue
			}
			claimed.Put(next)
			pond = append(pond, next)
			frontier = append(frontier, next)
		}
	}
	return pond
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
