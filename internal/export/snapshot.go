package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/dungeongen/internal/dungeon"
)

// zstdMagic первые байты кадра zstd
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Snapshot диагностический дамп одного уровня
type Snapshot struct {
	ID          string             `json:"id"`
	Seed        int64              `json:"seed"`
	Width       int                `json:"width"`
	Depth       int                `json:"depth"`
	Rooms       []RoomRecord       `json:"rooms"`
	Connections []ConnectionRecord `json:"connections"`
	WaterPoints []Point            `json:"water_points,omitempty"`
	PondSizes   []int              `json:"pond_sizes,omitempty"`
	Stats       dungeon.Stats      `json:"stats"`
	Tiles       []string           `json:"tiles"`
}

type Point struct {
	X int `json:"x"`
	Z int `json:"z"`
}

type RoomRecord struct {
	Index int          `json:"index"`
	X     int          `json:"x"`
	Z     int          `json:"z"`
	Width int          `json:"width"`
	Depth int          `json:"depth"`
	Doors []DoorRecord `json:"doors,omitempty"`
}

type DoorRecord struct {
	Point
	Facing string `json:"facing"`
}

type ConnectionRecord struct {
	Kind   string `json:"kind"`
	From   Point  `json:"from"`
	To     Point  `json:"to"`
	Length int    `json:"length"`
	RoomA  int    `json:"room_a"`
	RoomB  int    `json:"room_b"`
}

// NewSnapshot собирает дамп из результата генерации
func NewSnapshot(layout *dungeon.Layout) *Snapshot {
	s := &Snapshot{
		ID:    layout.ID.String(),
		Seed:  layout.Seed,
		Width: layout.Grid.Width,
		Depth: layout.Grid.Depth,
		Stats: layout.Stats,
		Tiles: Rows(layout.Grid),
	}
	for _, r := range layout.Rooms {
		rec := RoomRecord{Index: r.Index, X: r.X, Z: r.Z, Width: r.Width, Depth: r.Depth}
		for _, d := range r.Doors {
			rec.Doors = append(rec.Doors, DoorRecord{Point: Point{X: d.Pos.X, Z: d.Pos.Y}, Facing: d.Facing.String()})
		}
		s.Rooms = append(s.Rooms, rec)
	}
	for _, c := range layout.Connections {
		s.Connections = append(s.Connections, ConnectionRecord{
			Kind:   c.Kind.String(),
			From:   Point{X: c.From.X, Z: c.From.Y},
			To:     Point{X: c.To.X, Z: c.To.Y},
			Length: len(c.Path),
			RoomA:  c.RoomA,
			RoomB:  c.RoomB,
		})
	}
	for _, p := range layout.WaterPoints {
		s.WaterPoints = append(s.WaterPoints, Point{X: p.X, Z: p.Y})
	}
	for _, pond := range layout.Ponds {
		s.PondSizes = append(s.PondSizes, len(pond))
	}
	return s
}

// Grid восстанавливает сетку клеток из текстовых строк дампа
func (s *Snapshot) Grid() (*dungeon.Grid, error) {
	if len(s.Tiles) != s.Depth {
		return nil, fmt.Errorf("snapshot has %d rows, want %d", len(s.Tiles), s.Depth)
	}
	grid := dungeon.NewGrid(s.Width, s.Depth)
	for z, row := range s.Tiles {
		runes := []rune(row)
		if len(runes) != s.Width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", z, len(runes), s.Width)
		}
		for x, r := range runes {
			tt, ok := ParseRune(r)
			if !ok {
				return nil, fmt.Errorf("unknown tile %q at (%d,%d)", r, x, z)
			}
			grid.SetType(x, z, tt)
		}
	}
	return grid, nil
}

// WriteSnapshot пишет дамп уровня в JSON, при compress сжимая его zstd
func WriteSnapshot(w io.Writer, layout *dungeon.Layout, compress bool) error {
	if !compress {
		return encode(w, NewSnapshot(layout))
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := encode(enc, NewSnapshot(layout)); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush zstd: %w", err)
	}
	return nil
}

func encode(w io.Writer, s *Snapshot) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot читает дамп; сжатие zstd определяется по заголовку кадра
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReader(r)
	src := io.Reader(br)

	if head, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(head, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	var s Snapshot
	if err := json.NewDecoder(src).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
