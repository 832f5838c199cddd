package dungeon

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/vec"
)

// ConnectionKind происхождение соединения
type ConnectionKind uint8

const (
	ConnectionCorridor ConnectionKind = iota // жадное сопоставление ближайших стен
	ConnectionBridge                         // мост между компонентами связности
	ConnectionRiver                          // участок реки
)

func (k ConnectionKind) String() string {
	switch k {
	case ConnectionCorridor:
		return "corridor"
	case ConnectionBridge:
		return "bridge"
	case ConnectionRiver:
		return "river"
	default:
		return "unknown"
	}
}

// Connection записанное соединение. Для рек RoomA и RoomB равны -1.
type Connection struct {
	Kind  ConnectionKind
	From  vec.Vec2
	To    vec.Vec2
	Path  []vec.Vec2
	RoomA int
	RoomB int
}

// EdgePair кандидат на соединение двух комнат через центры их стен
type EdgePair struct {
	A, B     vec.Vec2
	Distance int
	RoomA    *Room
	RoomB    *Room
}

// ClosestWallCenters перебирает 4×4 пары центров стен и возвращает ближайшую
// по манхэттенскому расстоянию. При равенстве остаётся первая найденная.
func ClosestWallCenters(a, b *Room) EdgePair {
	best := EdgePair{Distance: math.MaxInt, RoomA: a, RoomB: b}
	ca, cb := a.WallCenters(), b.WallCenters()
	for _, pa := range ca {
		for _, pb := range cb {
			if d := pa.Manhattan(pb); d < best.Distance {
				best.A, best.B, best.Distance = pa, pb, d
			}
		}
	}
	return best
}

// CandidatePairs строит кандидатов для всех неупорядоченных пар комнат,
// отсортированных по возрастанию расстояния (стабильно).
func CandidatePairs(rooms []*Room) []EdgePair {
	pairs := make([]EdgePair, 0, len(rooms)*(len(rooms)-1)/2)
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			pairs = append(pairs, ClosestWallCenters(rooms[i], rooms[j]))
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Distance < pairs[j].Distance
	})
	return pairs
}

// ConnectivitySolver соединяет комнаты коридорами в один связный граф.
// Room.Index каждой комнаты должен совпадать с её позицией в срезе.
type ConnectivitySolver struct {
	pf     *Pathfinder
	logger *logging.Logger
	used   mapset.Set[vec.Vec2]

	// Failed число соединений, для которых не удалось построить путь
	Failed int
}

// NewConnectivitySolver создаёт решатель поверх поисковика коридоров
func NewConnectivitySolver(pf *Pathfinder, logger *logging.Logger) *ConnectivitySolver {
	return &ConnectivitySolver{
		pf:     pf,
		logger: logger,
		used:   mapset.New[vec.Vec2](),
	}
}

// ConnectRooms прокладывает коридоры и возвращает все записанные соединения
func (s *ConnectivitySolver) ConnectRooms(rooms []*Room) []Connection {
	if len(rooms) < 2 {
		return nil
	}

	var conns []Connection
	for _, pair := range CandidatePairs(rooms) {
		if s.used.Has(pair.A) || s.used.Has(pair.B) {
			continue
		}
		if c, ok := s.connect(pair, ConnectionCorridor); ok {
			conns = append(conns, c)
		}
	}

	bridges := s.ensureConnectivity(rooms, conns)
	s.logger.Debug("коридоров: %d, мостов: %d", len(conns), len(bridges))
	return append(conns, bridges...)
}

// connect прокладывает один коридор по паре. Неудача не является ошибкой.
func (s *ConnectivitySolver) connect(pair EdgePair, kind ConnectionKind) (Connection, bool) {
	path, _ := s.pf.FindCorridor(pair.A, pair.B)
	if path == nil {
		s.Failed++
		s.logger.Warn("не удалось соединить комнаты %d и %d (%v -> %v)", pair.RoomA.Index, pair.RoomB.Index, pair.A, pair.B)
		return Connection{}, false
	}

	s.pf.MarkPathAsFloor(path)
	s.pf.PlaceDoorsAtEndpoints(path)
	s.used.Put(pair.A)
	s.used.Put(pair.B)

	return Connection{
		Kind:  kind,
		From:  pair.A,
		To:    pair.B,
		Path:  path,
		RoomA: pair.RoomA.Index,
		RoomB: pair.RoomB.Index,
	}, true
}

// ensureConnectivity объединяет компоненты связности цепочкой:
// группа i соединяется с группой i+1 ближайшей парой центров стен.
func (s *ConnectivitySolver) ensureConnectivity(rooms []*Room, conns []Connection) []Connection {
	var added []Connection

	for round := 0; round < len(rooms); round++ {
		ds := NewDisjointSet(len(rooms))
		for _, c := range conns {
			ds.Union(c.RoomA, c.RoomB)
		}
		for _, c := range added {
			ds.Union(c.RoomA, c.RoomB)
		}

		groups := ds.Groups()
		if len(groups) <= 1 {
			return added
		}
		s.logger.Debug("компонент связности: %d, соединяем цепочкой", len(groups))

		progress := false
		for i := 0; i+1 < len(groups); i++ {
			pair := closestBetweenGroups(rooms, groups[i], groups[i+1])
			if c, ok := s.connect(pair, ConnectionBridge); ok {
				added = append(added, c)
				progress = true
			}
		}
		if !progress {
			s.logger.Warn("граф комнат остался несвязным: %d компонент", len(groups))
			return added
		}
	}
	return added
}

// closestBetweenGroups ищет ближайшую пару центров стен между двумя группами комнат
func closestBetweenGroups(rooms []*Room, groupA, groupB []int) EdgePair {
	best := EdgePair{Distance: math.MaxInt}
	for _, ia := range groupA {
		for _, ib := range groupB {
			if pair := ClosestWallCenters(rooms[ia], rooms[ib]); pair.Distance < best.Distance {
				best = pair
			}
		}
	}
	return best
}
