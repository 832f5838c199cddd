package dungeon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeongen/internal/vec"
)

func TestRecordDoorsFacing(t *testing.T) {
	g := NewGrid(10, 10)
	r := testRoom(0, 2, 2, 4, 4)
	g.FillRect(r.X, r.Z, r.Width, r.Depth, TileFloor)
	for _, p := range []vec.Vec2{{X: 4, Y: 2}, {X: 4, Y: 5}, {X: 2, Y: 4}, {X: 5, Y: 3}, {X: 3, Y: 3}} {
		g.SetType(p.X, p.Y, TileDoor)
	}

	n := RecordDoors(g, []*Room{r})

	// дверь внутри комнаты не на границе и не учитывается
	require.Equal(t, 4, n)
	assert.Equal(t, []Door{
		{Pos: vec.Vec2{X: 4, Y: 2}, Facing: FacingNorth},
		{Pos: vec.Vec2{X: 5, Y: 3}, Facing: FacingEast},
		{Pos: vec.Vec2{X: 2, Y: 4}, Facing: FacingWest},
		{Pos: vec.Vec2{X: 4, Y: 5}, Facing: FacingSouth},
	}, r.Doors)

	// повторный вызов не дублирует записи
	assert.Equal(t, 4, RecordDoors(g, []*Room{r}))
	assert.Len(t, r.Doors, 4)
}

func TestRecordDoorsCornerIsHorizontal(t *testing.T) {
	g := NewGrid(6, 6)
	r := testRoom(0, 1, 1, 3, 3)
	g.SetType(1, 3, TileDoor)

	RecordDoors(g, []*Room{r})

	require.Len(t, r.Doors, 1)
	assert.Equal(t, FacingSouth, r.Doors[0].Facing)
}

func TestEmitWallsAroundSingleFloor(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetType(2, 2, TileFloor)

	assert.Equal(t, 8, EmitWalls(g))
	assert.Equal(t, 8, g.Count(TileWall))
	assert.Equal(t, 16, g.Count(TileEmpty))
	assert.Equal(t, TileFloor, g.GetTile(2, 2).Type)

	assert.Equal(t, WallHorizontal, WallOrientation(g, 2, 1))
	assert.Equal(t, WallHorizontal, WallOrientation(g, 2, 3))
	assert.Equal(t, WallVertical, WallOrientation(g, 1, 2))
	assert.Equal(t, WallVertical, WallOrientation(g, 1, 1), "угол без открытых клеток сверху и снизу")

	assert.Zero(t, EmitWalls(g), "стены не порождают новых стен")
}

func TestEmitWallsKeepsBorder(t *testing.T) {
	g := NewGrid(3, 1)
	g.SetType(0, 0, TileWater)

	assert.Equal(t, 1, EmitWalls(g))
	assert.Equal(t, []TileType{TileWater, TileWall, TileEmpty}, g.Types())
}

func TestAttachActors(t *testing.T) {
	g := NewGrid(3, 1)
	g.SetType(0, 0, TileFloor)
	g.SetType(2, 0, TileWater)
	g.GetTile(1, 0).Actor = "stale"

	n := AttachActors(g, ActorFactoryFunc(func(x, z int, tt TileType) ActorHandle {
		return fmt.Sprintf("%s@%d,%d", tt, x, z)
	}))

	assert.Equal(t, 2, n)
	assert.Equal(t, "floor@0,0", g.GetTile(0, 0).Actor)
	assert.Nil(t, g.GetTile(1, 0).Actor)
	assert.Equal(t, "water@2,0", g.GetTile(2, 0).Actor)
}
