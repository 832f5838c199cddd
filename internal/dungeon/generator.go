package dungeon

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/vec"
)

const tracerName = "github.com/annel0/dungeongen/internal/dungeon"

// Stats счётчики одного запуска. Мягкие деградации видны только здесь.
type Stats struct {
	RoomsRequested    int
	RoomsPlaced       int
	PlacementAttempts int

	Corridors         int
	Bridges           int
	FailedConnections int
	CorridorFallbacks int

	WaterPointsRequested int
	WaterPoints          int
	RiverSegments        int
	ExtraRiverLinks      int
	RiverFallbacks       int
	Ponds                int
	WaterTiles           int

	Doors     int
	WallTiles int
}

// Layout результат генерации: сетка, комнаты и соединения
type Layout struct {
	ID          uuid.UUID
	Seed        int64
	Params      Params
	Grid        *Grid
	Rooms       []*Room
	Connections []Connection
	WaterPoints []vec.Vec2
	Ponds       [][]vec.Vec2
	Stats       Stats
}

// Option настраивает Generator
type Option func(*Generator)

// WithLogger направляет логи всех этапов в один логгер
func WithLogger(l *logging.Logger) Option {
	return func(g *Generator) {
		g.roomLog, g.corridorLog, g.waterLog, g.logger = l, l, l, l
	}
}

// WithTracer задаёт трассировщик вместо глобального
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) {
		g.tracer = t
	}
}

// Generator последовательно запускает все этапы над одной сеткой.
// Все случайные значения берутся из одного генератора, созданного по сиду.
type Generator struct {
	params Params
	seed   int64
	rng    *rand.Rand
	tracer trace.Tracer

	logger      *logging.Logger
	roomLog     *logging.Logger
	corridorLog *logging.Logger
	waterLog    *logging.Logger
}

// NewGenerator создаёт генератор с параметрами и сидом
func NewGenerator(params Params, seed int64, opts ...Option) *Generator {
	g := &Generator{
		params:      params,
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
		tracer:      otel.Tracer(tracerName),
		logger:      logging.GetComponentLogger("generator"),
		roomLog:     logging.GetComponentLogger("rooms"),
		corridorLog: logging.GetComponentLogger("corridors"),
		waterLog:    logging.GetComponentLogger("water"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate строит новый уровень. ctx используется только для трассировки:
// генерация не прерывается и всегда доходит до конца.
// Повторный вызов продолжает ту же последовательность случайных чисел.
func (g *Generator) Generate(ctx context.Context) *Layout {
	ctx, span := g.tracer.Start(ctx, "dungeon.Generate", trace.WithAttributes(
		attribute.Int64("dungeon.seed", g.seed),
		attribute.Int("dungeon.grid_width", g.params.GridWidth),
		attribute.Int("dungeon.grid_depth", g.params.GridDepth),
	))
	defer span.End()

	layout := &Layout{
		ID:     uuid.New(),
		Seed:   g.seed,
		Params: g.params,
		Grid:   NewGrid(g.params.GridWidth, g.params.GridDepth),
	}
	st := &layout.Stats

	g.placeRooms(ctx, layout)
	g.connectRooms(ctx, layout)
	g.addWater(ctx, layout)

	if g.params.RecordDoors {
		st.Doors = RecordDoors(layout.Grid, layout.Rooms)
	}
	if g.params.EmitWalls {
		st.WallTiles = EmitWalls(layout.Grid)
	}
	st.WaterTiles = layout.Grid.Count(TileWater)

	span.SetAttributes(
		attribute.Int("dungeon.rooms", st.RoomsPlaced),
		attribute.Int("dungeon.connections", len(layout.Connections)),
	)
	g.logger.Info("уровень %s: комнат %d/%d, коридоров %d, мостов %d, точек воды %d, прудов %d",
		layout.ID, st.RoomsPlaced, st.RoomsRequested, st.Corridors, st.Bridges, st.WaterPoints, st.Ponds)
	return layout
}

func (g *Generator) placeRooms(ctx context.Context, layout *Layout) {
	_, span := g.tracer.Start(ctx, "dungeon.PlaceRooms")
	defer span.End()

	placer := NewRoomPlacer(layout.Grid, g.params, g.rng, g.roomLog)
	layout.Rooms = placer.GenerateFloors(g.params.RoomCount)

	layout.Stats.RoomsRequested = g.params.RoomCount
	layout.Stats.RoomsPlaced = len(layout.Rooms)
	layout.Stats.PlacementAttempts = placer.Attempts
	span.SetAttributes(attribute.Int("dungeon.rooms_placed", len(layout.Rooms)))
}

func (g *Generator) connectRooms(ctx context.Context, layout *Layout) {
	_, span := g.tracer.Start(ctx, "dungeon.ConnectRooms")
	defer span.End()

	pf := NewPathfinder(layout.Grid, CorridorTiles(), g.corridorLog)
	solver := NewConnectivitySolver(pf, g.corridorLog)
	conns := solver.ConnectRooms(layout.Rooms)
	layout.Connections = append(layout.Connections, conns...)

	st := &layout.Stats
	for _, c := range conns {
		if c.Kind == ConnectionBridge {
			st.Bridges++
		} else {
			st.Corridors++
		}
	}
	st.FailedConnections = solver.Failed
	st.CorridorFallbacks = pf.Fallbacks
	span.SetAttributes(attribute.Int("dungeon.connections", len(conns)))
}

func (g *Generator) addWater(ctx context.Context, layout *Layout) {
	_, span := g.tracer.Start(ctx, "dungeon.AddWater")
	defer span.End()

	water := NewWaterFeatureGenerator(layout.Grid, g.params, g.rng, g.waterLog)
	res := water.Generate()

	layout.WaterPoints = res.Points
	layout.Ponds = res.Ponds
	layout.Connections = append(layout.Connections, res.Rivers...)

	st := &layout.Stats
	st.WaterPointsRequested = res.Target
	st.WaterPoints = len(res.Points)
	st.RiverSegments = len(res.Rivers)
	st.ExtraRiverLinks = res.ExtraLinks
	st.RiverFallbacks = water.Fallbacks()
	st.Ponds = len(res.Ponds)
	span.SetAttributes(
		attribute.Int("dungeon.water_points", len(res.Points)),
		attribute.Int("dungeon.ponds", len(res.Ponds)),
	)
}
