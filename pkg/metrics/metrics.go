// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rampshare.
//
// go-rampshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for share dealing
// and recovery. Metrics register with the default registry; a CLI run can
// export them with WriteTextfile for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all rampshare metrics
	Namespace = "rampshare"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpEncode      = "encode"
	OpDecode      = "decode"
	OpSplit       = "split"
	OpReconstruct = "reconstruct"
	OpDeal        = "deal"
	OpRecover     = "recover"
	OpStore       = "store"
	OpLoad        = "load"
	OpList        = "list"
	OpDelete      = "delete"
)

var (
	// OperationsTotal tracks the total number of operations by type and status.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of rampshare operations by type and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// OperationDuration tracks the duration of operations in seconds.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of rampshare operations in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{LabelOperation},
	)

	// ErrorsTotal tracks errors by operation and error type
	// (e.g. "integrity", "decryption", "missing_share").
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation and error type",
		},
		[]string{LabelOperation, LabelErrorType},
	)

	// ShareBits is the bit length of the most recently split secret.
	ShareBits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "share_bits",
			Help:      "Bit length of the most recently split secret",
		},
	)

	// MaskWidth is the participant mask width C(n,k-1)+m of the most
	// recently used scheme.
	MaskWidth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "mask_width",
			Help:      "Participant mask width of the most recently used scheme",
		},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	// Metrics are enabled by default
	enabled.Store(true)
}

// RecordOperation records an operation with its duration and status.
//
// Example:
//
//	start := time.Now()
//	shares, err := scheme.Split(secret)
//	status := metrics.StatusSuccess
//	if err != nil {
//	    status = metrics.StatusError
//	}
//	metrics.RecordOperation(metrics.OpSplit, status, time.Since(start).Seconds())
func RecordOperation(operation, status string, duration float64) {
	if !enabled.Load() {
		return
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error event for operation.
func RecordError(operation, errorType string) {
	if !enabled.Load() {
		return
	}
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// Track starts timing operation. The returned function records the
// outcome; pass the operation's error (nil for success).
//
//	done := metrics.Track(metrics.OpDeal)
//	set, err := d.deal(ctx, msg)
//	done(err)
func Track(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		status := StatusSuccess
		if err != nil {
			status = StatusError
		}
		RecordOperation(operation, status, time.Since(start).Seconds())
	}
}

// SetShareBits records the bit length of a split secret.
func SetShareBits(bits int) {
	if !enabled.Load() {
		return
	}
	ShareBits.Set(float64(bits))
}

// SetMaskWidth records the participant mask width of a scheme.
func SetMaskWidth(width int) {
	if !enabled.Load() {
		return
	}
	MaskWidth.Set(float64(width))
}

// WriteTextfile writes every metric in the default registry to path in
// the Prometheus text exposition format. The file is written atomically.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom writes the metrics gathered by g to path.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if path == "" {
		return fmt.Errorf("metrics: textfile path cannot be empty")
	}
	CollectOnce()
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: failed to write textfile %s: %w", path, err)
	}
	return nil
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
// Useful for testing or when metrics are not desired.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
