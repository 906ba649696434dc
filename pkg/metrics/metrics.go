package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты резервирования слота
const (
	ReservationReserved = "reserved"
	ReservationRejected = "capacity_exceeded"
	ReservationFailed   = "error"
)

// Результаты освобождения слота
const (
	ReleaseReleased = "released"
	ReleaseClamped  = "clamped"
	ReleaseFailed   = "error"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	dbQueries     *prometheus.HistogramVec
	dbOpenConns   *prometheus.GaugeVec
	dbInUseConns  *prometheus.GaugeVec
	dbIdleConns   *prometheus.GaugeVec
	dbWaitCount   *prometheus.GaugeVec
	reservations  *prometheus.CounterVec
	releases      *prometheus.CounterVec
	releaseAnomal *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (для тестов)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Count of HTTP requests by route, method and status.",
			ConstLabels: constLabels,
		}, []string{"route", "method", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and method.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"route", "method"}),
		dbQueries: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation and outcome.",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"db"}),
		reservations: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Slot reservation attempts by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		releases: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_releases_total",
			Help:        "Slot releases by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		releaseAnomal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_release_anomalies_total",
			Help:        "Releases attempted on a slot with zero booked orders.",
			ConstLabels: constLabels,
		}, []string{"store_id"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_grid_cache_lookups_total",
			Help:        "Slot grid cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbInUseConns.WithLabelValues(db).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
}

// IncReservation фиксирует исход резервирования
func (m *Metrics) IncReservation(result string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(result).Inc()
}

// IncRelease фиксирует освобождение слота
func (m *Metrics) IncRelease(result string) {
	if m == nil {
		return
	}
	m.releases.WithLabelValues(result).Inc()
}

// IncReleaseAnomaly фиксирует попытку освободить слот без бронирований
func (m *Metrics) IncReleaseAnomaly(storeID int64) {
	if m == nil {
		return
	}
	m.releaseAnomal.WithLabelValues(strconv.FormatInt(storeID, 10)).Inc()
}

// IncCacheLookup фиксирует попадание/промах кэша сетки слотов
func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
