package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the sealing service.
type Metrics struct {
	// --- Sealing pipeline ---
	SealsTotal      *prometheus.CounterVec
	SealDuration    prometheus.Histogram
	BudgetOverruns  prometheus.Counter
	CurrentSequence prometheus.Gauge
	ChainLength     prometheus.Gauge

	// --- Store accessor ---
	StoreOpDuration  *prometheus.HistogramVec
	AllocatorRetries prometheus.Counter
	CorruptionErrors prometheus.Counter

	// --- Reads ---
	RecordReads *prometheus.CounterVec

	// --- Downstream (announcements, archive mirror) ---
	AnnounceDrops   prometheus.Counter
	ArchiveDrops    prometheus.Counter
	ArchiveWritten  prometheus.Counter
	ArchiveErrors   *prometheus.CounterVec
	ArchiveBatchDur prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics. Call once per
// process; promauto registers on the default registry.
func NewMetrics() *Metrics {
	// Buckets bracket the 50 ms seal budget.
	sealBuckets := []float64{
		0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0,
	}

	storeBuckets := []float64{
		0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25,
	}

	return &Metrics{
		SealsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_seals_total",
			Help: "Seal operations by outcome",
		}, []string{"status"}),

		SealDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_seal_duration_seconds",
			Help:    "End-to-end seal operation duration",
			Buckets: sealBuckets,
		}),

		BudgetOverruns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_seal_budget_overruns_total",
			Help: "Seals that exceeded the latency budget (still successful)",
		}),

		CurrentSequence: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_current_sequence",
			Help: "Last assigned sequence number",
		}),

		ChainLength: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_chain_length",
			Help: "Entries in the in-memory hash chain",
		}),

		StoreOpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_store_op_duration_seconds",
			Help:    "Consensus store round-trip duration",
			Buckets: storeBuckets,
		}, []string{"op"}),

		AllocatorRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_allocator_cas_retries_total",
			Help: "Sequence allocations that lost a compare-and-swap race",
		}),

		CorruptionErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_corruption_errors_total",
			Help: "Stored values that failed to parse",
		}),

		RecordReads: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_record_reads_total",
			Help: "GetEvent reads by outcome",
		}, []string{"status"}),

		AnnounceDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_announce_drops_total",
			Help: "Sealed-record announcements dropped (full channel)",
		}),

		ArchiveDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_archive_drops_total",
			Help: "Records not mirrored to the archive (full channel)",
		}),

		ArchiveWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_archive_records_written_total",
			Help: "Records mirrored to the Postgres archive",
		}),

		ArchiveErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_archive_errors_total",
			Help: "Archive mirror write errors",
		}, []string{"error_type"}),

		ArchiveBatchDur: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_archive_batch_duration_seconds",
			Help:    "Archive batch write duration",
			Buckets: storeBuckets,
		}),
	}
}
