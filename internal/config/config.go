package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/annel0/dungeongen/internal/dungeon"
	"github.com/annel0/dungeongen/internal/logging"
)

// ErrInvalidConfig оборачивает каждое нарушенное ограничение конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации генератора
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type GenerationConfig struct {
	Seed int64 `yaml:"seed"`

	GridWidth int `yaml:"grid_width"`
	GridDepth int `yaml:"grid_depth"`

	RoomCount            int `yaml:"room_count"`
	MinRoomWidth         int `yaml:"min_room_width"`
	MaxRoomWidth         int `yaml:"max_room_width"`
	MinRoomDepth         int `yaml:"min_room_depth"`
	MaxRoomDepth         int `yaml:"max_room_depth"`
	MinRoomDistance      int `yaml:"min_room_distance"`
	MaxPlacementAttempts int `yaml:"max_placement_attempts"`

	MinWaterPoints           int     `yaml:"min_water_points"`
	MaxWaterPoints           int     `yaml:"max_water_points"`
	MinDistanceBetweenPoints float64 `yaml:"min_distance_between_points"`
	MaxDistanceBetweenPoints float64 `yaml:"max_distance_between_points"`
	MaxSamplingAttempts      int     `yaml:"max_sampling_attempts"`

	EnablePonds          bool `yaml:"enable_ponds"`
	MinPondSize          int  `yaml:"min_pond_size"`
	MaxPondSize          int  `yaml:"max_pond_size"`
	MinFloorTilesForPond int  `yaml:"min_floor_tiles_for_pond"`
	PondRadius           int  `yaml:"pond_radius"`

	EmitWalls   bool `yaml:"emit_walls"`
	RecordDoors bool `yaml:"record_doors"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	p := dungeon.DefaultParams()
	return &Config{
		Generation: GenerationConfig{
			GridWidth:                p.GridWidth,
			GridDepth:                p.GridDepth,
			RoomCount:                p.RoomCount,
			MinRoomWidth:             p.MinRoomWidth,
			MaxRoomWidth:             p.MaxRoomWidth,
			MinRoomDepth:             p.MinRoomDepth,
			MaxRoomDepth:             p.MaxRoomDepth,
			MinRoomDistance:          p.MinRoomDistance,
			MaxPlacementAttempts:     p.MaxPlacementAttempts,
			MinWaterPoints:           p.MinWaterPoints,
			MaxWaterPoints:           p.MaxWaterPoints,
			MinDistanceBetweenPoints: p.MinDistanceBetweenPoints,
			MaxDistanceBetweenPoints: p.MaxDistanceBetweenPoints,
			MaxSamplingAttempts:      p.MaxSamplingAttempts,
			EnablePonds:              p.EnablePonds,
			MinPondSize:              p.MinPondSize,
			MaxPondSize:              p.MaxPondSize,
			MinFloorTilesForPond:     p.MinFloorTilesForPond,
			PondRadius:               p.PondRadius,
			EmitWalls:                p.EmitWalls,
			RecordDoors:              p.RecordDoors,
		},
		Logging:   LoggingConfig{Level: "info"},
		Telemetry: TelemetryConfig{ServiceName: "dungeongen"},
	}
}

// Params переводит конфигурацию в параметры ядра генерации
func (g *GenerationConfig) Params() dungeon.Params {
	return dungeon.Params{
		GridWidth:                g.GridWidth,
		GridDepth:                g.GridDepth,
		RoomCount:                g.RoomCount,
		MinRoomWidth:             g.MinRoomWidth,
		MaxRoomWidth:             g.MaxRoomWidth,
		MinRoomDepth:             g.MinRoomDepth,
		MaxRoomDepth:             g.MaxRoomDepth,
		MinRoomDistance:          g.MinRoomDistance,
		MaxPlacementAttempts:     g.MaxPlacementAttempts,
		MinWaterPoints:           g.MinWaterPoints,
		MaxWaterPoints:           g.MaxWaterPoints,
		MinDistanceBetweenPoints: g.MinDistanceBetweenPoints,
		MaxDistanceBetweenPoints: g.MaxDistanceBetweenPoints,
		MaxSamplingAttempts:      g.MaxSamplingAttempts,
		EnablePonds:              g.EnablePonds,
		MinPondSize:              g.MinPondSize,
		MaxPondSize:              g.MaxPondSize,
		MinFloorTilesForPond:     g.MinFloorTilesForPond,
		PondRadius:               g.PondRadius,
		EmitWalls:                g.EmitWalls,
		RecordDoors:              g.RecordDoors,
	}
}

// ResolveSeed возвращает сид с приоритетом: config -> DUNGEON_SEED -> текущее время
func (g *GenerationConfig) ResolveSeed() int64 {
	if g.Seed != 0 {
		return g.Seed
	}
	if envVal := os.Getenv("DUNGEON_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil && seed != 0 {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// Validate проверяет все ограничения сразу и возвращает их объединённую ошибку
func (g *GenerationConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalidConfig)...))
		}
	}

	check(g.GridWidth > 0 && g.GridDepth > 0, "grid size %dx%d must be positive", g.GridWidth, g.GridDepth)
	check(g.RoomCount >= 0, "room_count %d is negative", g.RoomCount)
	check(g.MinRoomWidth > 0 && g.MinRoomWidth <= g.MaxRoomWidth,
		"room width range [%d, %d] is invalid", g.MinRoomWidth, g.MaxRoomWidth)
	check(g.MinRoomDepth > 0 && g.MinRoomDepth <= g.MaxRoomDepth,
		"room depth range [%d, %d] is invalid", g.MinRoomDepth, g.MaxRoomDepth)
	check(g.MinRoomDistance >= 0, "min_room_distance %d is negative", g.MinRoomDistance)
	check(g.MaxPlacementAttempts > 0, "max_placement_attempts %d must be positive", g.MaxPlacementAttempts)
	check(g.MinWaterPoints >= 0 && g.MinWaterPoints <= g.MaxWaterPoints,
		"water points range [%d, %d] is invalid", g.MinWaterPoints, g.MaxWaterPoints)
	check(g.MinDistanceBetweenPoints >= 0 && g.MinDistanceBetweenPoints <= g.MaxDistanceBetweenPoints,
		"water point distance range [%g, %g] is invalid", g.MinDistanceBetweenPoints, g.MaxDistanceBetweenPoints)
	check(g.MaxSamplingAttempts >= 0, "max_sampling_attempts %d is negative", g.MaxSamplingAttempts)
	if g.EnablePonds {
		check(g.MinPondSize > 0 && g.MinPondSize <= g.MaxPondSize,
			"pond size range [%d, %d] is invalid", g.MinPondSize, g.MaxPondSize)
		check(g.PondRadius >= 0, "pond_radius %d is negative", g.PondRadius)
		check(g.MinFloorTilesForPond >= 0, "min_floor_tiles_for_pond %d is negative", g.MinFloorTilesForPond)
	}

	return errors.Join(errs...)
}

// Validate проверяет конфигурацию целиком
func (c *Config) Validate() error {
	var errs []error
	if err := c.Generation.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging level %q: %w", c.Logging.Level, ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// GetAddr возвращает адрес метрик с приоритетом: config -> DUNGEON_METRICS_ADDR.
// Пустая строка означает, что сервер метрик не запускается.
func (m *MetricsConfig) GetAddr() string {
	return getStringWithEnvFallback(m.Addr, "DUNGEON_METRICS_ADDR", "")
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берётся ENV DUNGEON_CONFIG; если и он пуст, возвращаются дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("DUNGEON_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
