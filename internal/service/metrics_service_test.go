package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshotAverages(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest("GET", "/students/:id/grades", 200, 20*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/students/:id/grades", 200, 40*time.Millisecond)
	m.ObserveDBQuery("grades.list", 10*time.Millisecond)

	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.ObserveCacheWrite(time.Millisecond)

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.RequestsTotal)
	assert.InDelta(t, 30, snap.AverageRequestDurationMs, 0.0001)
	assert.EqualValues(t, 1, snap.DBQueryCount)
	assert.InDelta(t, 10, snap.AverageDBQueryDurationMs, 0.0001)
	assert.EqualValues(t, 2, snap.CacheHits)
	assert.EqualValues(t, 1, snap.CacheMisses)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveCacheWrite(time.Millisecond)
	m.ObserveDBQuery("noop", time.Millisecond)

	snap := m.Snapshot()
	assert.Zero(t, snap.RequestsTotal)
	assert.NotNil(t, m.Handler())
}
