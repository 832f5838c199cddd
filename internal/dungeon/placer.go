package dungeon

import (
	"math/rand"

	"github.com/annel0/dungeongen/internal/logging"
)

// RoomPlacer случайно размещает прямоугольные комнаты в сетке
type RoomPlacer struct {
	grid   *Grid
	params Params
	rng    *rand.Rand
	logger *logging.Logger

	// Attempts сколько попыток размещения было сделано за последний вызов
	Attempts int
}

// NewRoomPlacer создаёт размещатель комнат поверх сетки
func NewRoomPlacer(grid *Grid, params Params, rng *rand.Rand, logger *logging.Logger) *RoomPlacer {
	return &RoomPlacer{
		grid:   grid,
		params: params,
		rng:    rng,
		logger: logger,
	}
}

// GenerateFloors пытается разместить roomCount комнат.
// Комната, не поместившаяся за MaxPlacementAttempts попыток, пропускается;
// уже размещённые комнаты никогда не удаляются.
func (p *RoomPlacer) GenerateFloors(roomCount int) []*Room {
	rooms := make([]*Room, 0, roomCount)
	p.Attempts = 0

	for i := 0; i < roomCount; i++ {
		room := p.placeRoom(len(rooms))
		if room == nil {
			p.logger.Warn("комната %d/%d не размещена за %d попыток", i+1, roomCount, p.params.MaxPlacementAttempts)
			continue
		}
		rooms = append(rooms, room)
		p.logger.Debug("комната #%d: (%d,%d) %dx%d", room.Index, room.X, room.Z, room.Width, room.Depth)
	}

	return rooms
}

// placeRoom делает до MaxPlacementAttempts попыток и возвращает nil при неудаче
func (p *RoomPlacer) placeRoom(index int) *Room {
	for attempt := 0; attempt < p.params.MaxPlacementAttempts; attempt++ {
		p.Attempts++

		w := randRange(p.rng, p.params.MinRoomWidth, p.params.MaxRoomWidth)
		d := randRange(p.rng, p.params.MinRoomDepth, p.params.MaxRoomDepth)
		if w > p.grid.Width || d > p.grid.Depth {
			continue
		}

		x := p.rng.Intn(p.grid.Width - w + 1)
		z := p.rng.Intn(p.grid.Depth - d + 1)

		if !p.grid.CanPlaceRoom(x, z, w, d, p.params.MinRoomDistance) {
			continue
		}

		p.grid.FillRect(x, z, w, d, TileFloor)
		return &Room{Index: index, X: x, Z: z, Width: w, Depth: d}
	}
	return nil
}
