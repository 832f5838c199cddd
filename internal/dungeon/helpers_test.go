package dungeon

import (
	"math/rand"

	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/vec"
)

var quiet = logging.Discard()

// newFilledGrid создаёт сетку, целиком заполненную одним типом
func newFilledGrid(w, d int, tt TileType) *Grid {
	g := NewGrid(w, d)
	g.FillRect(0, 0, w, d, tt)
	return g
}

// reachable выполняет заливку по Floor, Door и Water от клетки start
func reachable(g *Grid, start vec.Vec2) []bool {
	seen := make([]bool, g.Width*g.Depth)
	if !g.TileAt(start).IsOpen() {
		return seen
	}
	queue := []vec.Vec2{start}
	seen[g.index(start)] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range vec.Cardinal {
			next := cur.Add(d)
			if !g.TileAt(next).IsOpen() || seen[g.index(next)] {
				continue
			}
			seen[g.index(next)] = true
			queue = append(queue, next)
		}
	}
	return seen
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testRoom(index, x, z, w, d int) *Room {
	return &Room{Index: index, X: x, Z: z, Width: w, Depth: d}
}
