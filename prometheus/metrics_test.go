package prometheus

import (
	"os"
	"testing"
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "metrics_test"}})
	os.Exit(m.Run())
}

func TestTrackDBOperationObservesDuration(t *testing.T) {
	name := "metrics_test_db_operation_duration_seconds"
	assert.Equal(t, 0, testutil.CollectAndCount(&DbOperationDuration, name))

	done := TrackDBOperation("query")
	done(time.Now().Add(-5 * time.Millisecond))

	assert.Equal(t, 1, testutil.CollectAndCount(&DbOperationDuration, name))
}

func TestRecordForbiddenLabelsEntityAndOperation(t *testing.T) {
	RecordForbidden("client", "update")

	got := testutil.ToFloat64(ForbiddenCounter.WithLabelValues("client", "update"))
	assert.Equal(t, float64(1), got)
}
