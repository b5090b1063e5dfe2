package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/complaints/:id", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/complaints/:id", "GET", 200, 4*time.Millisecond)
	m.RecordError("/admin/complaints/:id/status", "PATCH", "NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/complaints/:id|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/admin/complaints/:id/status|PATCH|NOT_FOUND"])
	assert.Equal(t, int64(2), snap.TotalRequestCount)
	assert.InDelta(t, 3.0, snap.AverageLatencyMs, 0.001)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Zero(t, m.Snapshot().TotalRequestCount)
}
