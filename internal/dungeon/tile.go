package dungeon

import "github.com/zyedidia/generic/mapset"

// TileType тип клетки сетки
type TileType uint8

const (
	TileEmpty TileType = iota
	TileFloor
	TileWall
	TileDoor
	TileWater
)

// String возвращает строковое представление типа клетки
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileDoor:
		return "door"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}

// ActorHandle непрозрачная ссылка на визуальное представление клетки.
// Принадлежит слою отображения, ядро её не читает.
type ActorHandle interface{}

// Tile клетка сетки. Создаётся один раз при построении сетки и меняется на месте.
type Tile struct {
	Type  TileType
	X, Z  int
	Actor ActorHandle
}

// IsOpen проверяет, что клетка относится к проходимому полу (Floor, Door, Water)
func (t *Tile) IsOpen() bool {
	return t != nil && (t.Type == TileFloor || t.Type == TileDoor || t.Type == TileWater)
}

// TileSet набор типов клеток, используемый как правило проходимости
type TileSet = mapset.Set[TileType]

// CorridorTiles проходимые типы при прокладке коридоров
func CorridorTiles() TileSet {
	return mapset.Of(TileFloor, TileDoor)
}

// RiverTiles проходимые типы при прокладке рек
func RiverTiles() TileSet {
	return mapset.Of(TileFloor, TileDoor, TileWater)
}
