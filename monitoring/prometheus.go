package monitoring

import (
	"net/http"

	"starledger/logx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProofRejectedReason labels the rejected-proof counter.
type ProofRejectedReason string

var (
	ProofMalformedChallenge ProofRejectedReason = "malformed_challenge"
	ProofChallengeExpired   ProofRejectedReason = "challenge_expired"
	ProofInvalidSignature   ProofRejectedReason = "invalid_signature"
	ProofChainInvalid       ProofRejectedReason = "chain_invalid"
	ProofRejectedUnknown    ProofRejectedReason = "other"
)

type nodePromMetrics struct {
	nodeUpUnixSeconds  prometheus.Gauge
	chainHeight        prometheus.Gauge
	appendedBlockCount prometheus.Counter
	rejectedProofCount *prometheus.CounterVec
	issuedChallenges   prometheus.Counter
	validationFaults   prometheus.Gauge
	panicCount         prometheus.Counter
}

func newNodePromMetrics() *nodePromMetrics {
	return &nodePromMetrics{
		nodeUpUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "starledger_node_up_timestamp_unix_seconds",
				Help: "Unix timestamp of the node",
			},
		),
		chainHeight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "starledger_node_chain_height",
				Help: "The current chain height",
			},
		),
		appendedBlockCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "starledger_node_appended_block_count",
				Help: "The total number of blocks appended since start",
			},
		),
		rejectedProofCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starledger_node_rejected_proof_count",
				Help: "The total number of rejected ownership proofs",
			},
			[]string{"reason"},
		),
		issuedChallenges: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "starledger_node_issued_challenge_count",
				Help: "The total number of ownership challenges issued",
			},
		),
		validationFaults: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "starledger_node_validation_faults",
				Help: "Number of faults reported by the last chain validation",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "starledger_node_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var nodeMetrics *nodePromMetrics

// InitMetrics initializes node metrics without exposing them yet. Metric
// updates before InitMetrics are dropped, which keeps library use (and
// tests) free of prometheus wiring.
func InitMetrics() {
	nodeMetrics = newNodePromMetrics()
	nodeMetrics.nodeUpUnixSeconds.SetToCurrentTime()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("MONITORING", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func SetChainHeight(height uint64) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.chainHeight.Set(float64(height))
}

func IncreaseAppendedBlocks() {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.appendedBlockCount.Inc()
}

func RecordRejectedProof(reason ProofRejectedReason) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.rejectedProofCount.With(prometheus.Labels{"reason": string(reason)}).Inc()
}

func IncreaseIssuedChallenges() {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.issuedChallenges.Inc()
}

func SetValidationFaults(count int) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.validationFaults.Set(float64(count))
}

func IncreasePanicCount() {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.panicCount.Inc()
}
