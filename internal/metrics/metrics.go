package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registration, institute linking and
// dashboard reads.
type Metrics struct {
	Registrations       *prometheus.CounterVec
	RegistrationRejects *prometheus.CounterVec
	InstitutesCreated   prometheus.Counter
	InstituteCache      *prometheus.CounterVec
	SignIns             *prometheus.CounterVec
	PageFetchDuration   *prometheus.HistogramVec
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placement_registrations_total",
			Help: "Total number of successful registrations by role",
		}, []string{"role"}),
		RegistrationRejects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placement_registration_rejects_total",
			Help: "Total number of registrations rejected by validation, by reason",
		}, []string{"reason"}),
		InstitutesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "placement_institutes_created_total",
			Help: "Total number of institutes created",
		}),
		InstituteCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placement_institute_cache_lookups_total",
			Help: "Institute name cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		SignIns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "placement_signins_total",
			Help: "Sign-in attempts by result",
		}, []string{"result"}),
		PageFetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placement_page_fetch_duration_seconds",
			Help:    "Duration of paginated collection reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"collection"}),
	}
}

// IncrementRegistration records a successful registration.
func (m *Metrics) IncrementRegistration(role string) {
	m.Registrations.WithLabelValues(role).Inc()
}

// IncrementRegistrationReject records a validation rejection.
func (m *Metrics) IncrementRegistrationReject(reason string) {
	m.RegistrationRejects.WithLabelValues(reason).Inc()
}

// IncrementInstituteCreated records a new institute.
func (m *Metrics) IncrementInstituteCreated() {
	m.InstitutesCreated.Inc()
}

// IncrementInstituteCache records a cache lookup outcome.
func (m *Metrics) IncrementInstituteCache(result string) {
	m.InstituteCache.WithLabelValues(result).Inc()
}

// IncrementSignIn records a sign-in outcome.
func (m *Metrics) IncrementSignIn(result string) {
	m.SignIns.WithLabelValues(result).Inc()
}

// ObservePageFetch records the duration of a paginated read.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePageFetch(collection string, start time.Time) {
	m.PageFetchDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
}
