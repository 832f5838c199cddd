package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/dungeongen/internal/dungeon"
	"github.com/annel0/dungeongen/internal/logging"
)

// Recorder переводит статистику запусков генерации в метрики Prometheus.
//
// Метрики:
// * dungeon_generations_total — counter
// * dungeon_rooms_placed_total, dungeon_rooms_skipped_total — counter
// * dungeon_corridors_total{kind} — counter (corridor, bridge, river)
// * dungeon_path_fallbacks_total — counter (Г-образные пути коридоров и рек)
// * dungeon_ponds_total — counter
// * dungeon_generation_duration_seconds — histogram
type Recorder struct {
	generations prometheus.Counter
	roomsPlaced prometheus.Counter
	roomsSkip   prometheus.Counter
	corridors   *prometheus.CounterVec
	fallbacks   prometheus.Counter
	ponds       prometheus.Counter
	duration    prometheus.Histogram
}

// NewRecorder создаёт метрики и регистрирует их в reg.
// nil означает глобальный prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "generations_total",
			Help:      "Число завершённых запусков генерации.",
		}),
		roomsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "rooms_placed_total",
			Help:      "Размещённые комнаты.",
		}),
		roomsSkip: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "rooms_skipped_total",
			Help:      "Комнаты, не нашедшие места за отведённые попытки.",
		}),
		corridors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "corridors_total",
			Help:      "Проложенные соединения по видам.",
		}, []string{"kind"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "path_fallbacks_total",
			Help:      "Соединения, построенные Г-образным путём вместо A*.",
		}),
		ponds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Name:      "ponds_total",
			Help:      "Выращенные пруды.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dungeon",
			Name:      "generation_duration_seconds",
			Help:      "Длительность одного запуска генерации.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}

	reg.MustRegister(r.generations, r.roomsPlaced, r.roomsSkip, r.corridors, r.fallbacks, r.ponds, r.duration)
	return r
}

// Observe записывает один запуск генерации
func (r *Recorder) Observe(st dungeon.Stats, d time.Duration) {
	r.generations.Inc()
	r.roomsPlaced.Add(float64(st.RoomsPlaced))
	if skipped := st.RoomsRequested - st.RoomsPlaced; skipped > 0 {
		r.roomsSkip.Add(float64(skipped))
	}
	r.corridors.WithLabelValues(dungeon.ConnectionCorridor.String()).Add(float64(st.Corridors))
	r.corridors.WithLabelValues(dungeon.ConnectionBridge.String()).Add(float64(st.Bridges))
	r.corridors.WithLabelValues(dungeon.ConnectionRiver.String()).Add(float64(st.RiverSegments))
	r.fallbacks.Add(float64(st.CorridorFallbacks + st.RiverFallbacks))
	r.ponds.Add(float64(st.Ponds))
	r.duration.Observe(d.Seconds())
}

// StartHTTP запускает эндпоинт /metrics на addr (например, ":2112").
// Метод неблокирующий; остановка через Shutdown у возвращённого сервера.
func StartHTTP(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
