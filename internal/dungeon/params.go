package dungeon

import "math/rand"

// Params параметры генерации. Диапазоны проверяет вызывающая сторона
// (см. config.GenerationConfig.Validate); ядро их не перепроверяет.
type Params struct {
	GridWidth int
	GridDepth int

	RoomCount            int
	MinRoomWidth         int
	MaxRoomWidth         int
	MinRoomDepth         int
	MaxRoomDepth         int
	MinRoomDistance      int
	MaxPlacementAttempts int

	MinWaterPoints           int
	MaxWaterPoints           int
	MinDistanceBetweenPoints float64
	MaxDistanceBetweenPoints float64
	MaxSamplingAttempts      int

	EnablePonds          bool
	MinPondSize          int
	MaxPondSize          int
	MinFloorTilesForPond int
	PondRadius           int

	EmitWalls   bool
	RecordDoors bool
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		GridWidth:                64,
		GridDepth:                48,
		RoomCount:                12,
		MinRoomWidth:             4,
		MaxRoomWidth:             10,
		MinRoomDepth:             4,
		MaxRoomDepth:             8,
		MinRoomDistance:          2,
		MaxPlacementAttempts:     100,
		MinWaterPoints:           3,
		MaxWaterPoints:           6,
		MinDistanceBetweenPoints: 4,
		MaxDistanceBetweenPoints: 14,
		MaxSamplingAttempts:      1000,
		EnablePonds:              true,
		MinPondSize:              4,
		MaxPondSize:              10,
		MinFloorTilesForPond:     8,
		PondRadius:               3,
		EmitWalls:                true,
		RecordDoors:              true,
	}
}

// randRange возвращает случайное целое из [lo, hi]
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
