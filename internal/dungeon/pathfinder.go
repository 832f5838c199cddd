package dungeon

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/vec"
)

// PathNode запись поиска A*. Живёт только в пределах одного поиска.
type PathNode struct {
	Pos    vec.Vec2
	G      int // стоимость от старта
	H      int // эвристика до цели
	Parent *PathNode
}

// F полная оценка узла
func (n *PathNode) F() int {
	return n.G + n.H
}

// openLess упорядочивает открытое множество: минимальный F, при равенстве минимальный H
func openLess(a, b *PathNode) bool {
	if fa, fb := a.F(), b.F(); fa != fb {
		return fa < fb
	}
	return a.H < b.H
}

// Pathfinder поиск кратчайшего пути по 4-связной сетке
type Pathfinder struct {
	grid   *Grid
	open   TileSet
	logger *logging.Logger

	// Fallbacks сколько раз A* не нашёл путь и был построен Г-образный
	Fallbacks int
}

// NewPathfinder создаёт поисковик. open - типы клеток, по которым можно идти.
func NewPathfinder(grid *Grid, open TileSet, logger *logging.Logger) *Pathfinder {
	return &Pathfinder{
		grid:   grid,
		open:   open,
		logger: logger,
	}
}

// IsTraversable проверяет проходимость клетки для поиска start -> end.
// Старт и цель проходимы всегда.
func (pf *Pathfinder) IsTraversable(p, start, end vec.Vec2) bool {
	if p == start || p == end {
		return pf.grid.IsValidPosition(p.X, p.Y)
	}
	tt, ok := pf.grid.TypeAt(p)
	return ok && pf.open.Has(tt)
}

// FindPath ищет путь A* от start до end включительно.
// Возвращает nil, если открытое множество исчерпано.
func (pf *Pathfinder) FindPath(start, end vec.Vec2) []vec.Vec2 {
	if !pf.grid.IsValidPosition(start.X, start.Y) || !pf.grid.IsValidPosition(end.X, end.Y) {
		return nil
	}
	if start == end {
		return []vec.Vec2{start}
	}

	size := pf.grid.Width * pf.grid.Depth
	bestG := make([]int, size)
	for i := range bestG {
		bestG[i] = math.MaxInt
	}
	closed := make([]bool, size)

	openSet := heap.New[*PathNode](openLess)
	openSet.Push(&PathNode{Pos: start, G: 0, H: start.Manhattan(end)})
	bestG[pf.grid.index(start)] = 0

	for openSet.Size() > 0 {
		current, _ := openSet.Pop()
		ci := pf.grid.index(current.Pos)
		if closed[ci] {
			continue // устаревшая запись
		}
		if current.Pos == end {
			return reconstructPath(current)
		}
		closed[ci] = true

		for _, d := range vec.Cardinal {
			next := current.Pos.Add(d)
			if !pf.grid.IsValidPosition(next.X, next.Y) {
				continue
			}
			ni := pf.grid.index(next)
			if closed[ni] || !pf.IsTraversable(next, start, end) {
				continue
			}

			g := current.G + 1
			if g >= bestG[ni] {
				continue
			}
			bestG[ni] = g
			openSet.Push(&PathNode{Pos: next, G: g, H: next.Manhattan(end), Parent: current})
		}
	}

	return nil
}

// reconstructPath восстанавливает путь от старта до узла по ссылкам на предка
func reconstructPath(node *PathNode) []vec.Vec2 {
	path := make([]vec.Vec2, node.G+1)
	for n := node; n != nil; n = n.Parent {
		path[n.G] = n.Pos
	}
	return path
}

// PathCost стоимость пути при единичной цене шага
func PathCost(path []vec.Vec2) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}

// LPath строит Г-образный путь: сначала полностью по одной оси, затем по другой
func LPath(start, end vec.Vec2, horizontalFirst bool) []vec.Vec2 {
	path := make([]vec.Vec2, 0, start.Manhattan(end)+1)
	path = append(path, start)
	cur := start

	stepX := func() {
		for cur.X != end.X {
			cur.X += sign(end.X - cur.X)
			path = append(path, cur)
		}
	}
	stepZ := func() {
		for cur.Y != end.Y {
			cur.Y += sign(end.Y - cur.Y)
			path = append(path, cur)
		}
	}

	if horizontalFirst {
		stepX()
		stepZ()
	} else {
		stepZ()
		stepX()
	}
	return path
}

// BestLPath выбирает из двух Г-образных путей тот, где меньше непроходимых клеток.
// При равенстве выигрывает путь "сначала по горизонтали".
func (pf *Pathfinder) BestLPath(start, end vec.Vec2) []vec.Vec2 {
	if !pf.grid.IsValidPosition(start.X, start.Y) || !pf.grid.IsValidPosition(end.X, end.Y) {
		return nil
	}

	horizontal := LPath(start, end, true)
	vertical := LPath(start, end, false)
	if pf.countObstacles(vertical, start, end) < pf.countObstacles(horizontal, start, end) {
		return vertical
	}
	return horizontal
}

func (pf *Pathfinder) countObstacles(path []vec.Vec2, start, end vec.Vec2) int {
	n := 0
	for _, p := range path {
		if !pf.IsTraversable(p, start, end) {
			n++
		}
	}
	return n
}

// FindCorridor ищет путь A*, а при неудаче строит Г-образный путь.
// fallback == true, если использован запасной путь; nil - если концы вне сетки.
func (pf *Pathfinder) FindCorridor(start, end vec.Vec2) (path []vec.Vec2, fallback bool) {
	if path = pf.FindPath(start, end); path != nil {
		return path, false
	}

	path = pf.BestLPath(start, end)
	if path == nil {
		return nil, false
	}
	pf.Fallbacks++
	pf.logger.Debug("A* не нашёл путь %v -> %v, используется Г-образный путь", start, end)
	return path, true
}

// MarkPathAsFloor превращает пустые клетки и стены пути в пол.
// Двери и вода не трогаются. Возвращает число изменённых клеток.
func (pf *Pathfinder) MarkPathAsFloor(path []vec.Vec2) int {
	changed := 0
	for _, p := range path {
		t := pf.grid.TileAt(p)
		if t == nil {
			continue
		}
		if t.Type == TileEmpty || t.Type == TileWall {
			t.Type = TileFloor
			changed++
		}
	}
	return changed
}

// PlaceDoorsAtEndpoints ставит двери в первой и последней клетке пути,
// если там стена или пол.
func (pf *Pathfinder) PlaceDoorsAtEndpoints(path []vec.Vec2) {
	if len(path) == 0 {
		return
	}
	pf.placeDoor(path[0])
	if len(path) > 1 {
		pf.placeDoor(path[len(path)-1])
	}
}

func (pf *Pathfinder) placeDoor(p vec.Vec2) {
	t := pf.grid.TileAt(p)
	if t != nil && (t.Type == TileWall || t.Type == TileFloor) {
		t.Type = TileDoor
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
