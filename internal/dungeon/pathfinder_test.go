package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeongen/internal/vec"
)

// assertValidPath проверяет 4-смежность шагов и проходимость промежуточных клеток
func assertValidPath(t *testing.T, pf *Pathfinder, path []vec.Vec2, start, end vec.Vec2) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0], "путь начинается в старте")
	assert.Equal(t, end, path[len(path)-1], "путь заканчивается в цели")
	for i := 1; i < len(path); i++ {
		assert.True(t, path[i-1].IsAdjacent4(path[i]), "шаг %d: %v -> %v", i, path[i-1], path[i])
	}
	for _, p := range path[1 : len(path)-1] {
		assert.True(t, pf.IsTraversable(p, start, end), "клетка %v непроходима", p)
	}
}

func TestFindPathStraightLine(t *testing.T) {
	g := newFilledGrid(5, 5, TileFloor)
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	path := pf.FindPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 3, Y: 0})

	assert.Equal(t, []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, path)
	assert.Equal(t, 3, PathCost(path))
}

func TestFindPathAroundWall(t *testing.T) {
	g := newFilledGrid(5, 5, TileFloor)
	for z := 0; z < 4; z++ {
		g.SetType(2, z, TileWall)
	}
	pf := NewPathfinder(g, CorridorTiles(), quiet)
	start, end := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}

	path := pf.FindPath(start, end)

	assertValidPath(t, pf, path, start, end)
	assert.Equal(t, 12, PathCost(path), "обход стены снизу")
	assert.Contains(t, path, vec.Vec2{X: 2, Y: 4}, "единственный проход через нижнюю строку")
}

func TestFindPathNoRoute(t *testing.T) {
	g := NewGrid(5, 5)
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	assert.Nil(t, pf.FindPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}), "пустые клетки непроходимы")
	assert.Nil(t, pf.FindPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 9, Y: 9}), "цель вне сетки")
}

func TestFindPathEndpointsAlwaysTraversable(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetType(1, 0, TileFloor)
	g.SetType(3, 0, TileWall)
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	path := pf.FindPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0})
	assert.Equal(t, []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, path)

	path = pf.FindPath(vec.Vec2{X: 1, Y: 0}, vec.Vec2{X: 2, Y: 0})
	assert.Equal(t, []vec.Vec2{{X: 1, Y: 0}, {X: 2, Y: 0}}, path, "пустая цель допустима")

	assert.Equal(t, []vec.Vec2{{X: 3, Y: 0}}, pf.FindPath(vec.Vec2{X: 3, Y: 0}, vec.Vec2{X: 3, Y: 0}))
}

func TestFindPathRiverTilesIncludeWater(t *testing.T) {
	g := newFilledGrid(5, 1, TileWater)
	start, end := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}

	assert.Nil(t, NewPathfinder(g, CorridorTiles(), quiet).FindPath(start, end), "коридор не идёт по воде")
	assert.Len(t, NewPathfinder(g, RiverTiles(), quiet).FindPath(start, end), 5)
}

func TestOpenSetPrefersSmallerHeuristic(t *testing.T) {
	near := &PathNode{G: 4, H: 1}
	far := &PathNode{G: 1, H: 4}
	cheaper := &PathNode{G: 1, H: 2}

	assert.True(t, openLess(near, far), "при равном F выигрывает меньший H")
	assert.False(t, openLess(far, near))
	assert.True(t, openLess(cheaper, near), "меньший F важнее H")
}

func TestLPathShapes(t *testing.T) {
	start, end := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 2, Y: 3}

	assert.Equal(t, []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}},
		LPath(start, end, true))
	assert.Equal(t, []vec.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}},
		LPath(start, end, false))
	assert.Equal(t, []vec.Vec2{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}, LPath(vec.Vec2{X: 3, Y: 1}, vec.Vec2{X: 1, Y: 1}, false))
}

func TestBestLPathPicksFewerObstacles(t *testing.T) {
	g := NewGrid(5, 5)
	// Вертикальный-первый путь (0,0)->(0,4)->(4,4) уже проложен полом
	for z := 0; z < 5; z++ {
		g.SetType(0, z, TileFloor)
	}
	for x := 0; x < 5; x++ {
		g.SetType(x, 4, TileFloor)
	}
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	path := pf.BestLPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4})
	assert.Equal(t, LPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, false), path)

	empty := NewPathfinder(NewGrid(5, 5), CorridorTiles(), quiet)
	assert.Equal(t, LPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, true),
		empty.BestLPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}), "при равенстве - горизонтальный")
}

func TestFindCorridorFallsBackToLPath(t *testing.T) {
	g := NewGrid(5, 5)
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	path, fallback := pf.FindCorridor(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4})

	assert.True(t, fallback)
	assert.Equal(t, 1, pf.Fallbacks)
	assert.Len(t, path, 9)

	path, fallback = pf.FindCorridor(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 7, Y: 7})
	assert.Nil(t, path, "конец вне сетки")
	assert.False(t, fallback)
}

func TestMarkPathAsFloorIdempotent(t *testing.T) {
	g := NewGrid(6, 1)
	g.SetType(1, 0, TileWall)
	g.SetType(2, 0, TileDoor)
	g.SetType(3, 0, TileWater)
	pf := NewPathfinder(g, CorridorTiles(), quiet)
	path := LPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 5, Y: 0}, true)

	assert.Equal(t, 4, pf.MarkPathAsFloor(path))
	once := g.Types()
	assert.Equal(t, 0, pf.MarkPathAsFloor(path), "повторная разметка ничего не меняет")
	assert.Equal(t, once, g.Types())

	assert.Equal(t, []TileType{TileFloor, TileFloor, TileDoor, TileWater, TileFloor, TileFloor}, once)
}

func TestPlaceDoorsAtEndpoints(t *testing.T) {
	g := newFilledGrid(5, 1, TileFloor)
	g.SetType(4, 0, TileWall)
	pf := NewPathfinder(g, CorridorTiles(), quiet)

	pf.PlaceDoorsAtEndpoints(LPath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}, true))
	assert.Equal(t, []TileType{TileDoor, TileFloor, TileFloor, TileFloor, TileDoor}, g.Types())

	empty := NewGrid(3, 1)
	pf = NewPathfinder(empty, CorridorTiles(), quiet)
	pf.PlaceDoorsAtEndpoints([]vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}})
	assert.Equal(t, 0, empty.Count(TileDoor), "пустые клетки дверью не становятся")

	single := newFilledGrid(2, 1, TileFloor)
	pf = NewPathfinder(single, CorridorTiles(), quiet)
	pf.PlaceDoorsAtEndpoints([]vec.Vec2{{X: 1, Y: 0}})
	assert.Equal(t, []TileType{TileFloor, TileDoor}, single.Types())

	assert.NotPanics(t, func() { pf.PlaceDoorsAtEndpoints(nil) })
}
