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

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEnabled(t *testing.T) {
	assert.True(t, IsEnabled(), "metrics should be enabled by default")

	Disable()
	assert.False(t, IsEnabled())

	Enable()
	assert.True(t, IsEnabled())
}

func TestRecordOperation(t *testing.T) {
	Enable()
	OperationsTotal.Reset()
	OperationDuration.Reset()

	RecordOperation(OpSplit, StatusSuccess, 0.002)
	assert.Equal(t, 1, testutil.CollectAndCount(OperationsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(OperationDuration))

	RecordOperation(OpDecode, StatusError, 0.001)
	assert.Equal(t, 2, testutil.CollectAndCount(OperationsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(OperationsTotal.WithLabelValues(OpDecode, StatusError)))
}

func TestRecordOperationWhenDisabled(t *testing.T) {
	Disable()
	defer Enable()
	OperationsTotal.Reset()
	ErrorsTotal.Reset()

	RecordOperation(OpSplit, StatusSuccess, 0.1)
	RecordError(OpSplit, "invalid_parameters")
	SetShareBits(8)

	assert.Equal(t, 0, testutil.CollectAndCount(OperationsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(ErrorsTotal))
}

func TestRecordError(t *testing.T) {
	Enable()
	ErrorsTotal.Reset()

	RecordError(OpRecover, "integrity")
	RecordError(OpRecover, "integrity")
	RecordError(OpRecover, "decryption")

	assert.Equal(t, 2, testutil.CollectAndCount(ErrorsTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(ErrorsTotal.WithLabelValues(OpRecover, "integrity")))
}

func TestTrack(t *testing.T) {
	Enable()
	OperationsTotal.Reset()

	Track(OpDeal)(nil)
	Track(OpDeal)(errors.New("failed"))

	assert.Equal(t, float64(1), testutil.ToFloat64(OperationsTotal.WithLabelValues(OpDeal, StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(OperationsTotal.WithLabelValues(OpDeal, StatusError)))
}

func TestGauges(t *testing.T) {
	Enable()

	SetShareBits(1024)
	SetMaskWidth(38)

	assert.Equal(t, float64(1024), testutil.ToFloat64(ShareBits))
	assert.Equal(t, float64(38), testutil.ToFloat64(MaskWidth))
}

func TestCollectOnce(t *testing.T) {
	Enable()
	CollectOnce()
	assert.Greater(t, testutil.ToFloat64(MemoryAllocBytes), float64(0))
}

func TestWriteTextfile(t *testing.T) {
	Enable()
	OperationsTotal.Reset()
	RecordOperation(OpSplit, StatusSuccess, 0.01)
	SetMaskWidth(38)

	path := filepath.Join(t.TempDir(), "rampshare.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `rampshare_operations_total{operation="split",status="success"} 1`)
	assert.Contains(t, text, "rampshare_mask_width 38")
	assert.Contains(t, text, "rampshare_memory_alloc_bytes")
}

func TestWriteTextfileFrom_CustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total", Help: "custom"})
	reg.MustRegister(counter)
	counter.Add(3)

	path := filepath.Join(t.TempDir(), "custom.prom")
	require.NoError(t, WriteTextfileFrom(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "custom_total 3"))

	assert.Error(t, WriteTextfileFrom(reg, ""))
}
